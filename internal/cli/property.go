package cli

import (
	"github.com/spf13/cobra"
)

func newPropertyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "property <id>",
		Short: "Show a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "property")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			p, err := c.GetProperty(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}
			printPropertySummary(cmd.OutOrStdout(), p)
			return nil
		},
	}
}
