// Package cli defines the cobra command tree for house-market.
package cli

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/db"
	"github.com/evcraddock/house-market/internal/logging"
	"github.com/evcraddock/house-market/internal/session"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hm",
		Short: "Work with the house marketplace from the terminal",
		Long: "A client for the house marketplace. Schedule and manage property visits, chat with agents, " +
			"tune notification preferences, browse publications and record transactions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env file is fine.
			_ = godotenv.Load()
			logging.Setup(os.Getenv(envDevMode) == "true", os.Getenv(envLogLevel))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite drafts database path (default: ~/.config/hm/drafts.db)")

	root.AddCommand(
		newVisitCmd(),
		newChatCmd(),
		newPrefCmd(),
		newPubCmd(),
		newTxCmd(),
		newPropertyCmd(),
		newWatchCmd(),
		newBrowseCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite drafts database using the --db flag or default path.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newAPIClient creates an HTTP client for the marketplace API.
// It fails when no backend URL is configured.
func newAPIClient() (*client.Client, error) {
	serverURL, err := getServerURL()
	if err != nil {
		return nil, err
	}
	return client.New(serverURL, session.New(ConfigStore{})), nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}

// parseID parses a positive numeric ID argument.
func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", what, s)
	}
	return id, nil
}

// confirm asks a yes/no question on out and reads the answer from in.
// Anything other than y or yes counts as no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading input: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	}
	return false, nil
}
