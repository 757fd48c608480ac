package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var (
		server string
		userID int64
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token",
		Long: `Store the access token issued by the marketplace.

Sign in on the marketplace website, copy your access token and paste it
when prompted. The token is saved to ~/.config/hm/config.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.InOrStdin(), cmd.OutOrStdout(), server, userID)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "backend URL to store (default: keep current)")
	cmd.Flags().Int64Var(&userID, "user", 0, "your user ID, used as the default for --client, --from and --user")

	return cmd
}

func runLogin(in io.Reader, out io.Writer, serverFlag string, userID int64) error {
	fmt.Fprint(out, "Paste your access token: ")
	token, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("reading input: %w", err)
	}

	token = strings.TrimSpace(token)
	if err := validateToken(token); err != nil {
		return err
	}

	// Load existing config to preserve other fields
	cfg, err := loadConfig()
	if err != nil {
		cfg = CLIConfig{}
	}

	cfg.Token = token
	if serverFlag != "" {
		cfg.ServerURL = strings.TrimRight(serverFlag, "/")
	}
	if userID > 0 {
		cfg.UserID = userID
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\n✓ Token saved. You're logged in!")
	return nil
}

// validateToken checks that the token looks like a bearer token.
func validateToken(token string) error {
	if token == "" {
		return fmt.Errorf("no token provided")
	}
	if strings.ContainsAny(token, " \t") {
		return fmt.Errorf("invalid token format (must not contain spaces)")
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer") {
		return fmt.Errorf("paste the token without the Bearer prefix")
	}
	return nil
}
