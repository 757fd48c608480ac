package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/evcraddock/house-market/internal/localtime"
	"github.com/evcraddock/house-market/internal/transaction"
	"github.com/evcraddock/house-market/internal/validate"
)

func newTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record and review sale and rental transactions",
	}

	cmd.AddCommand(
		newTxListCmd(),
		newTxShowCmd(),
		newTxCreateCmd(),
		newTxUpdateCmd(),
		newTxDeleteCmd(),
	)

	return cmd
}

func newTxListCmd() *cobra.Command {
	var clientID, agentID, propertyID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions by client, agent or property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := 0
			for _, id := range []int64{clientID, agentID, propertyID} {
				if id != 0 {
					set++
				}
			}
			if set > 1 {
				return fmt.Errorf("use only one of --client, --agent or --property")
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}

			var txs []*transaction.Transaction
			switch {
			case agentID != 0:
				txs, err = c.ListTransactionsByAgent(cmd.Context(), agentID)
			case propertyID != 0:
				txs, err = c.ListTransactionsByProperty(cmd.Context(), propertyID)
			default:
				if clientID == 0 {
					clientID = getUserID()
				}
				if clientID == 0 {
					return fmt.Errorf("no user configured: pass --client, --agent or --property")
				}
				txs, err = c.ListTransactionsByClient(cmd.Context(), clientID)
			}
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), txs)
			}
			return printTransactionTable(cmd.OutOrStdout(), txs)
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "client user ID (default: your user)")
	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent user ID")
	cmd.Flags().Int64Var(&propertyID, "property", 0, "property ID")

	return cmd
}

func newTxShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "transaction")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			t, err := c.GetTransaction(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), t)
			}
			printTransactionDetail(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

// txFlags are the transaction fields settable from the command line.
type txFlags struct {
	propertyID, clientID, agentID int64
	txType                        string
	amount                        float64
	date                          string
	status, notes                 string
}

func (f *txFlags) register(fs *pflag.FlagSet) {
	fs.Int64Var(&f.propertyID, "property", 0, "property ID")
	fs.Int64Var(&f.clientID, "client", 0, "client user ID")
	fs.Int64Var(&f.agentID, "agent", 0, "agent user ID")
	fs.StringVar(&f.txType, "type", "", "sale or rental")
	fs.Float64Var(&f.amount, "amount", 0, "amount")
	fs.StringVar(&f.date, "date", "", "date (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS, default now)")
	fs.StringVar(&f.status, "status", "", "status text")
	fs.StringVar(&f.notes, "notes", "", "notes")
}

// apply copies the changed flags onto req.
func (f *txFlags) apply(fs *pflag.FlagSet, req *transaction.Request) error {
	if fs.Changed("property") {
		req.PropertyID = f.propertyID
	}
	if fs.Changed("client") {
		req.ClientID = f.clientID
	}
	if fs.Changed("agent") {
		req.AgentID = f.agentID
	}
	if fs.Changed("type") {
		t, err := transaction.ParseType(f.txType)
		if err != nil {
			return err
		}
		req.Type = t
	}
	if fs.Changed("amount") {
		req.Amount = f.amount
	}
	if fs.Changed("date") {
		d, err := localtime.Parse(f.date)
		if err != nil {
			return err
		}
		req.Date = localtime.Format(d)
	}
	if fs.Changed("status") {
		req.Status = f.status
	}
	if fs.Changed("notes") {
		req.Notes = f.notes
	}
	return nil
}

func newTxCreateCmd() *cobra.Command {
	var flags txFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a transaction",
		Long: `Record a sale or rental transaction.

Example:
  hm tx create --property 12 --client 3 --agent 7 --type sale --amount 250000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := transaction.Request{Date: localtime.Format(time.Now())}
			if err := flags.apply(cmd.Flags(), &req); err != nil {
				return err
			}
			if err := validate.Struct(req); err != nil {
				return err
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}
			t, err := c.CreateTransaction(cmd.Context(), req)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), t)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Transaction #%d recorded (%s).\n", t.ID, formatPrice(t.Amount))
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newTxUpdateCmd() *cobra.Command {
	var flags txFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "transaction")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			existing, err := c.GetTransaction(cmd.Context(), id)
			if err != nil {
				return err
			}

			req := transaction.RequestFrom(existing)
			if err := flags.apply(cmd.Flags(), &req); err != nil {
				return err
			}
			if err := validate.Struct(req); err != nil {
				return err
			}

			t, err := c.UpdateTransaction(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), t)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Transaction #%d updated.\n", t.ID)
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newTxDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "transaction")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := c.DeleteTransaction(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Transaction #%d deleted.\n", id)
			return nil
		},
	}
}
