package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/house-market/internal/chat"
	"github.com/evcraddock/house-market/internal/validate"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send and read chat messages",
	}

	cmd.AddCommand(
		newChatSendCmd(),
		newChatShowCmd(),
		newChatConversationCmd(),
		newChatPropertyCmd(),
		newChatReadCmd(),
		newChatDeleteCmd(),
	)

	return cmd
}

func newChatSendCmd() *cobra.Command {
	var (
		from       int64
		propertyID int64
	)

	cmd := &cobra.Command{
		Use:   "send <receiver-id> <text...>",
		Short: "Send a message",
		Long: `Send a message to another user.

Examples:
  hm chat send 7 "Is the apartment still available?"
  hm chat send 7 Can we meet on Tuesday --property 12`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			receiver, err := parseID(args[0], "receiver")
			if err != nil {
				return err
			}
			sender := from
			if sender == 0 {
				sender = getUserID()
			}

			req := chat.SendRequest{
				SenderID:   sender,
				ReceiverID: receiver,
				Content:    strings.TrimSpace(strings.Join(args[1:], " ")),
			}
			if propertyID > 0 {
				req.PropertyID = &propertyID
			}
			if err := validate.Struct(req); err != nil {
				return err
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}
			m, err := c.SendMessage(cmd.Context(), req)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Message #%d sent.\n", m.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&from, "from", 0, "sender user ID (default: your user)")
	cmd.Flags().Int64Var(&propertyID, "property", 0, "property the message is about")

	return cmd
}

func newChatShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "message")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			m, err := c.GetMessage(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), m)
			}
			printMessage(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

func newChatConversationCmd() *cobra.Command {
	var unread bool

	cmd := &cobra.Command{
		Use:   "conversation <user-id> [other-user-id]",
		Short: "Show the messages between two users",
		Long: `Show the messages between two users.

With one ID the conversation between you and that user is shown.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			me := getUserID()
			other, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			if len(args) == 2 {
				me = other
				if other, err = parseID(args[1], "user"); err != nil {
					return err
				}
			}
			if me == 0 {
				return fmt.Errorf("no user configured: pass both user IDs")
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}
			msgs, err := c.Conversation(cmd.Context(), me, other)
			if err != nil {
				return err
			}
			if unread {
				msgs = chat.Unread(msgs, me)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), msgs)
			}
			printMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unread, "unread", false, "only show messages the first user has not read")

	return cmd
}

func newChatPropertyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "property <property-id>",
		Short: "Show the messages about a property",
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
			msgs, err := c.ListMessagesByProperty(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), msgs)
			}
			printMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}
}

func newChatReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "message")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			m, err := c.MarkMessageRead(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Message #%d marked as read.\n", id)
			return nil
		},
	}
}

func newChatDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "message")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := c.DeleteMessage(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Message #%d deleted.\n", id)
			return nil
		},
	}
}
