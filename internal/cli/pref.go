package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/draft"
	"github.com/evcraddock/house-market/internal/preference"
	"github.com/evcraddock/house-market/internal/validate"
)

func newPrefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pref",
		Aliases: []string{"preference"},
		Short:   "Manage notification preferences",
		Long: `Manage notification preferences.

Edits are staged locally with 'pref edit' and sent with 'pref submit'.
Use "new" as the ID to stage a preference that does not exist yet.`,
	}

	cmd.AddCommand(
		newPrefListCmd(),
		newPrefShowCmd(),
		newPrefCreateCmd(),
		newPrefEditCmd(),
		newPrefDraftCmd(),
		newPrefSubmitCmd(),
		newPrefDiscardCmd(),
		newPrefToggleCmd(),
		newPrefDeleteCmd(),
	)

	return cmd
}

// editFlags are the preference fields settable from the command line.
type editFlags struct {
	region, district string
	radius, lat, lng float64
	mode, txType     string
	active           bool
}

func (f *editFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.region, "region", "", "region (empty string clears it)")
	fs.StringVar(&f.district, "district", "", "district (empty string clears it)")
	fs.Float64Var(&f.radius, "radius", 0, "search radius in km")
	fs.Float64Var(&f.lat, "lat", 0, "latitude of the search center")
	fs.Float64Var(&f.lng, "lng", 0, "longitude of the search center")
	fs.StringVar(&f.mode, "mode", "", "search mode: location, proximity or both")
	fs.StringVar(&f.txType, "type", "", "transaction type: sale or rental")
	fs.BoolVar(&f.active, "active", true, "whether notifications are on")
}

// edit builds a preference.Edit holding only the flags that were set.
func (f *editFlags) edit(fs *pflag.FlagSet) (preference.Edit, error) {
	var e preference.Edit
	if fs.Changed("region") {
		e.Region = &f.region
	}
	if fs.Changed("district") {
		e.District = &f.district
	}
	if fs.Changed("radius") {
		e.RadiusKm = &f.radius
	}
	if fs.Changed("lat") {
		e.Latitude = &f.lat
	}
	if fs.Changed("lng") {
		e.Longitude = &f.lng
	}
	if fs.Changed("mode") {
		m, err := preference.ParseSearchMode(f.mode)
		if err != nil {
			return e, err
		}
		e.SearchMode = &m
	}
	if fs.Changed("type") {
		t, err := preference.ParseTransactionType(f.txType)
		if err != nil {
			return e, err
		}
		e.TransactionType = &t
	}
	if fs.Changed("active") {
		e.Active = &f.active
	}
	return e, nil
}

// parseDraftKey reads a preference ID or "new".
func parseDraftKey(s string) (int64, error) {
	if s == "new" {
		return draft.NewKey, nil
	}
	return parseID(s, "preference")
}

func draftKeyLabel(key int64) string {
	if key == draft.NewKey {
		return "new preference"
	}
	return fmt.Sprintf("preference #%d", key)
}

// openDraftStore opens the drafts database. The returned func closes it.
func openDraftStore() (*draft.Store, func(), error) {
	database, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return draft.NewStore(database), func() { closeDB(database) }, nil
}

func newPrefListCmd() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's notification preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				userID = getUserID()
			}
			if userID == 0 {
				return fmt.Errorf("no user configured: pass --user")
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			prefs, err := c.ListPreferencesByUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), prefs)
			}
			return printPreferenceTable(cmd.OutOrStdout(), prefs)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID (default: your user)")

	return cmd
}

func newPrefShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a notification preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "preference")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			p, err := c.GetPreference(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}
			printPreferenceDetail(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func newPrefCreateCmd() *cobra.Command {
	var (
		flags  editFlags
		userID int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a notification preference",
		Long: `Create a notification preference in one step.

Examples:
  hm pref create --mode location --district Miraflores --type rental
  hm pref create --mode proximity --radius 3 --lat -12.12 --lng -77.03 --type sale`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.edit(cmd.Flags())
			if err != nil {
				return err
			}
			d := newDraft(userID).Apply(e)
			if err := validate.Struct(d); err != nil {
				return err
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}
			p, err := c.CreatePreference(cmd.Context(), d)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Preference #%d created.\n", p.ID)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().Int64Var(&userID, "user", 0, "user ID (default: your user)")

	return cmd
}

// newDraft starts an empty active draft for userID, or the configured user.
func newDraft(userID int64) preference.Draft {
	if userID == 0 {
		userID = getUserID()
	}
	return preference.Draft{UserID: userID, Active: true}
}

func newPrefEditCmd() *cobra.Command {
	var flags editFlags

	cmd := &cobra.Command{
		Use:   "edit <id|new>",
		Short: "Stage changes to a notification preference",
		Long: `Stage changes to a notification preference without sending them.

Run 'hm pref draft' to review and 'hm pref submit' to send.

Examples:
  hm pref edit 8 --mode both --radius 5
  hm pref edit new --mode location --region Lima --type sale`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseDraftKey(args[0])
			if err != nil {
				return err
			}
			e, err := flags.edit(cmd.Flags())
			if err != nil {
				return err
			}

			store, closeStore, err := openDraftStore()
			if err != nil {
				return err
			}
			defer closeStore()

			d, err := startingDraft(cmd.Context(), store, key)
			if err != nil {
				return err
			}
			entry, err := store.Save(key, d.Apply(e))
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), entry.Draft)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Draft saved for %s.\n", draftKeyLabel(key))
			if err := validate.Struct(entry.Draft); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "  Not ready to submit: %v\n", err)
			}
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

// startingDraft returns the staged draft for key, or a fresh one built from
// the current preference.
func startingDraft(ctx context.Context, store *draft.Store, key int64) (preference.Draft, error) {
	entry, err := store.Get(key)
	if err == nil {
		return entry.Draft, nil
	}
	if !errors.Is(err, draft.ErrNotFound) {
		return preference.Draft{}, err
	}
	if key == draft.NewKey {
		return newDraft(0), nil
	}

	c, err := newAPIClient()
	if err != nil {
		return preference.Draft{}, err
	}
	p, err := c.GetPreference(ctx, key)
	if err != nil {
		return preference.Draft{}, err
	}
	return preference.DraftFrom(p), nil
}

func newPrefDraftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draft [id|new]",
		Short: "Show staged preference changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openDraftStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if len(args) == 0 {
				entries, err := store.List()
				if err != nil {
					return err
				}
				return printDraftList(cmd.OutOrStdout(), entries)
			}

			key, err := parseDraftKey(args[0])
			if err != nil {
				return err
			}
			entry, err := store.Get(key)
			if errors.Is(err, draft.ErrNotFound) {
				return fmt.Errorf("no draft for %s", draftKeyLabel(key))
			}
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), entry.Draft)
			}
			return printDraftEntry(cmd.Context(), cmd.OutOrStdout(), entry)
		},
	}
}

func printDraftList(out io.Writer, entries []*draft.Entry) error {
	if isJSON() {
		return printJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No staged drafts.")
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			draftKeyLabel(e.PreferenceID),
			fmt.Sprint(e.UserID),
			string(e.Draft.SearchMode),
			string(e.Draft.TransactionType),
			formatTime(e.UpdatedAt.Local()),
		})
	}
	return table(out, []string{"DRAFT", "USER", "MODE", "TYPE", "UPDATED"}, rows)
}

// printDraftEntry shows a draft, with the changes against the current
// preference when one exists.
func printDraftEntry(ctx context.Context, out io.Writer, entry *draft.Entry) error {
	fmt.Fprintf(out, "Draft for %s\n", draftKeyLabel(entry.PreferenceID))
	printDraftFields(out, entry.Draft)

	if err := validate.Struct(entry.Draft); err != nil {
		fmt.Fprintf(out, "\nNot ready to submit: %v\n", err)
	}
	if entry.IsNew() {
		return nil
	}

	c, err := newAPIClient()
	if err != nil {
		return err
	}
	current, err := c.GetPreference(ctx, entry.PreferenceID)
	if err != nil {
		fmt.Fprintf(out, "\nCould not load the current preference: %s\n", client.UserMessage(err))
		return nil
	}
	changes := preference.Changes(current, entry.Draft)
	if len(changes) == 0 {
		fmt.Fprintln(out, "\nNo changes.")
		return nil
	}
	fmt.Fprintln(out, "\nChanges:")
	for _, ch := range changes {
		fmt.Fprintf(out, "  %s\n", ch)
	}
	return nil
}

func newPrefSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id|new>",
		Short: "Send staged preference changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseDraftKey(args[0])
			if err != nil {
				return err
			}

			store, closeStore, err := openDraftStore()
			if err != nil {
				return err
			}
			defer closeStore()

			entry, err := store.Get(key)
			if errors.Is(err, draft.ErrNotFound) {
				return fmt.Errorf("no draft for %s", draftKeyLabel(key))
			}
			if err != nil {
				return err
			}
			if err := validate.Struct(entry.Draft); err != nil {
				return err
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}

			var p *preference.Preference
			if entry.IsNew() {
				p, err = c.CreatePreference(cmd.Context(), entry.Draft)
			} else {
				p, err = c.UpdatePreference(cmd.Context(), key, entry.Draft)
			}
			if err != nil {
				return err
			}

			if err := store.Delete(key); err != nil {
				return fmt.Errorf("preference saved but draft not cleared: %w", err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Preference #%d saved.\n", p.ID)
			return nil
		},
	}
}

func newPrefDiscardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discard <id|new>",
		Short: "Drop staged preference changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseDraftKey(args[0])
			if err != nil {
				return err
			}
			store, closeStore, err := openDraftStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Delete(key); errors.Is(err, draft.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No draft for %s.\n", draftKeyLabel(key))
				return nil
			} else if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Draft for %s discarded.\n", draftKeyLabel(key))
			return nil
		},
	}
}

func newPrefToggleCmd() *cobra.Command {
	var on, off bool

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Turn a preference's notifications on or off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "preference")
			if err != nil {
				return err
			}
			if on && off {
				return fmt.Errorf("use only one of --on or --off")
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}

			active := on
			if !on && !off {
				current, err := c.GetPreference(cmd.Context(), id)
				if err != nil {
					return err
				}
				active = !current.Active
			}

			p, err := c.SetPreferenceActive(cmd.Context(), id, active)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}
			state := "off"
			if p.Active {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Notifications for preference #%d are %s.\n", id, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&on, "on", false, "turn notifications on")
	cmd.Flags().BoolVar(&off, "off", false, "turn notifications off")

	return cmd
}

func newPrefDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "preference")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := c.DeletePreference(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Preference #%d deleted.\n", id)
			return nil
		},
	}
}
