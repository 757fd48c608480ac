package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/localtime"
	"github.com/evcraddock/house-market/internal/schedule"
	"github.com/evcraddock/house-market/internal/visit"
)

func newVisitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visit",
		Short: "Schedule and manage property visits",
	}

	cmd.AddCommand(
		newVisitListCmd(),
		newVisitShowCmd(),
		newVisitScheduleCmd(),
		newVisitActionCmd(visit.ActionConfirm, "Confirm a pending visit"),
		newVisitActionCmd(visit.ActionCancel, "Cancel a visit"),
		newVisitActionCmd(visit.ActionComplete, "Mark a confirmed visit as completed"),
		newVisitRescheduleCmd(),
		newVisitActionCmd(visit.ActionDelete, "Delete a visit"),
	)

	return cmd
}

type visitListOptions struct {
	clientID   int64
	agentID    int64
	propertyID int64
	from, to   string
	status     string
}

func newVisitListCmd() *cobra.Command {
	var opts visitListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visits",
		Long: `List visits for a client, an agent, a property or a date range.

With no selector the visits of your own user (from 'hm login --user') are shown.

Examples:
  hm visit list --agent 7
  hm visit list --property 12 --status pending
  hm visit list --from 2024-06-10 --to 2024-06-16`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisitList(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Int64Var(&opts.clientID, "client", 0, "client user ID")
	cmd.Flags().Int64Var(&opts.agentID, "agent", 0, "agent user ID")
	cmd.Flags().Int64Var(&opts.propertyID, "property", 0, "property ID")
	cmd.Flags().StringVar(&opts.from, "from", "", "range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "range end date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&opts.status, "status", "", "only show visits with this status")

	return cmd
}

func runVisitList(ctx context.Context, out io.Writer, opts visitListOptions) error {
	var status visit.Status
	if opts.status != "" {
		status = visit.ParseStatus(opts.status)
		if status == visit.StatusUnknown {
			return fmt.Errorf("unknown status %q", opts.status)
		}
	}

	c, err := newAPIClient()
	if err != nil {
		return err
	}

	visits, err := fetchVisits(ctx, c, opts)
	if err != nil {
		return err
	}
	if status != visit.StatusUnknown {
		visits = filterVisits(visits, status)
	}

	if isJSON() {
		return printJSON(out, visits)
	}
	return printVisitTable(out, visits)
}

func fetchVisits(ctx context.Context, c *client.Client, opts visitListOptions) ([]*visit.Visit, error) {
	selectors := 0
	for _, set := range []bool{opts.clientID > 0, opts.agentID > 0, opts.propertyID > 0, opts.from != "" || opts.to != ""} {
		if set {
			selectors++
		}
	}
	if selectors > 1 {
		return nil, fmt.Errorf("use only one of --client, --agent, --property or --from/--to")
	}

	switch {
	case opts.agentID > 0:
		return c.ListVisitsByAgent(ctx, opts.agentID)
	case opts.propertyID > 0:
		return c.ListVisitsByProperty(ctx, opts.propertyID)
	case opts.from != "" || opts.to != "":
		from, to, err := parseRange(opts.from, opts.to)
		if err != nil {
			return nil, err
		}
		return c.ListVisitsBetween(ctx, from, to)
	}

	clientID := opts.clientID
	if clientID == 0 {
		clientID = getUserID()
	}
	if clientID == 0 {
		return nil, fmt.Errorf("no user configured: pass --client, --agent, --property or --from/--to")
	}
	return c.ListVisitsByClient(ctx, clientID)
}

// parseRange reads an inclusive date range. A missing end means the same day.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from is required with --to")
	}
	from, err := localtime.ParseDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to := from
	if toStr != "" {
		if to, err = localtime.ParseDate(toStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to is before --from")
	}
	y, m, d := to.Date()
	return from, time.Date(y, m, d, 23, 59, 59, 0, to.Location()), nil
}

func filterVisits(visits []*visit.Visit, status visit.Status) []*visit.Visit {
	var out []*visit.Visit
	for _, v := range visits {
		if v.Status() == status {
			out = append(out, v)
		}
	}
	return out
}

func newVisitShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a visit and the actions available for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "visit")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			v, err := c.GetVisit(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), v)
			}
			printVisitDetail(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newVisitScheduleCmd() *cobra.Command {
	var (
		message string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "schedule <property-id> <date> <time>",
		Short: "Book a visit to a property",
		Long: `Book a visit to a property.

Date format: YYYY-MM-DD
Time format: HH:MM (24h)

Visits must be booked at least 2 hours ahead. Weekend visits ask for
confirmation unless --yes is given.

Examples:
  hm visit schedule 12 2024-06-11 09:00
  hm visit schedule 12 2024-06-15 10:30 --message "I'll come with my partner" --yes`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, err := parseID(args[0], "property")
			if err != nil {
				return err
			}
			date, clock, err := parseDateClock(args[1], args[2])
			if err != nil {
				return err
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}

			s := newScheduler(c, cmd.InOrStdin(), cmd.ErrOrStderr())
			v, err := s.Submit(cmd.Context(), schedule.Request{
				PropertyID:       propertyID,
				Date:             date,
				Clock:            clock,
				Message:          message,
				WeekendConfirmed: yes,
			})
			if errors.Is(err, schedule.ErrAbandoned) {
				return printAbandoned(cmd.OutOrStdout(), "Visit not scheduled.")
			}
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), v)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Visit scheduled for %s (#%d, %s)\n",
				formatTime(v.ScheduledAt.Time), v.ID, v.StatusLabel())
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "optional message for the agent")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept a weekend date without asking")

	return cmd
}

func newVisitRescheduleCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reschedule <id> <date> <time>",
		Short: "Move a visit to a new date and time",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "visit")
			if err != nil {
				return err
			}
			date, clock, err := parseDateClock(args[1], args[2])
			if err != nil {
				return err
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}
			v, err := c.GetVisit(cmd.Context(), id)
			if err != nil {
				return err
			}

			s := newScheduler(c, cmd.InOrStdin(), cmd.ErrOrStderr())
			updated, err := s.Reschedule(cmd.Context(), v, date, clock, yes)
			if errors.Is(err, schedule.ErrAbandoned) {
				return printAbandoned(cmd.OutOrStdout(), "Visit not rescheduled.")
			}
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), updated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Visit #%d moved to %s\n", updated.ID, formatTime(updated.ScheduledAt.Time))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept a weekend date without asking")

	return cmd
}

func newVisitActionCmd(action visit.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "visit")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			return runVisitAction(cmd.Context(), cmd.OutOrStdout(), c, id, action)
		},
	}
}

// runVisitAction checks the reservation state, then applies action.
func runVisitAction(ctx context.Context, out io.Writer, c *client.Client, id int64, action visit.Action) error {
	if action == visit.ActionDelete {
		if err := c.DeleteVisit(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Visit #%d deleted.\n", id)
		return nil
	}

	v, err := c.GetVisit(ctx, id)
	if err != nil {
		return err
	}
	if err := visit.CheckAction(v, action); err != nil {
		return err
	}

	var updated *visit.Visit
	if action == visit.ActionConfirm {
		updated, err = c.ConfirmVisit(ctx, id)
	} else {
		req := visit.UpdateFrom(v)
		req.Status = action.Target()
		updated, err = c.UpdateVisit(ctx, id, req)
	}
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(out, updated)
	}
	fmt.Fprintf(out, "✓ Visit #%d is now %s.\n", updated.ID, updated.StatusLabel())
	return nil
}

// printAbandoned reports a declined weekend booking. JSON output gets a
// document so stdout stays parseable.
func printAbandoned(out io.Writer, text string) error {
	if isJSON() {
		return printJSON(out, map[string]interface{}{
			"scheduled": false,
			"reason":    schedule.ErrAbandoned.Error(),
		})
	}
	fmt.Fprintln(out, text)
	return nil
}

// newScheduler builds a scheduler that asks before booking a weekend date.
// The question goes to prompt, never to the command output.
func newScheduler(c *client.Client, in io.Reader, prompt io.Writer) *schedule.Scheduler {
	ask := schedule.ConfirmFunc(func(ctx context.Context, candidate time.Time) (bool, error) {
		q := fmt.Sprintf("%s falls on a %s. Book it anyway?", candidate.Format(timeFormat), candidate.Weekday())
		return confirm(in, prompt, q)
	})
	return schedule.New(c, schedule.WithConfirmer(ask))
}

func parseDateClock(dateStr, clockStr string) (time.Time, time.Time, error) {
	date, err := localtime.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	clock, err := localtime.ParseClock(clockStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return date, clock, nil
}
