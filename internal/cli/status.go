package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/session"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and auth status",
		Long:  "Tests the connection to the backend and checks if the stored token is accepted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runStatus(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	serverURL, err := getServerURL()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Server:  %s\n", serverURL)

	sess := session.New(ConfigStore{})
	token, err := sess.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Fprintln(out, "Token:   not configured")
		fmt.Fprintln(out, "\nRun 'hm login' to authenticate.")
		return nil
	}

	prefix := token
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	source := "config"
	if os.Getenv(envToken) != "" {
		source = envToken
	}
	fmt.Fprintf(out, "Token:   %s… (%s)\n", prefix, source)

	if id := getUserID(); id > 0 {
		fmt.Fprintf(out, "User:    #%d\n", id)
	}

	// Test the connection with the smallest authenticated request
	c := client.New(serverURL, sess)
	_, err = c.ListPublications(ctx, 0, 1)
	switch {
	case err == nil:
		fmt.Fprintln(out, "Status:  ✓ connected and authenticated")
	case client.IsStatus(err, http.StatusUnauthorized):
		fmt.Fprintln(out, "Status:  ✗ token rejected, stored token removed")
		fmt.Fprintln(out, "\nRun 'hm login' to re-authenticate.")
	default:
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) {
			fmt.Fprintf(out, "Status:  ✗ unexpected response (%d)\n", httpErr.StatusCode)
		} else {
			cause := err
			if inner := errors.Unwrap(err); inner != nil {
				cause = inner
			}
			fmt.Fprintf(out, "Status:  ✗ cannot reach server (%v)\n", cause)
		}
	}

	return nil
}
