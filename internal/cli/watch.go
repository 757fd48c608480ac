package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/fetch"
	"github.com/evcraddock/house-market/internal/visit"
)

const defaultWatchSpec = "@every 1m"

func newWatchCmd() *cobra.Command {
	var (
		clientID, agentID int64
		spec              string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print visit status changes as they happen",
		Long: `Poll a client's or agent's visits on a cron schedule and print every
status change. Runs until interrupted.

Examples:
  hm watch
  hm watch --agent 7 --cron "*/5 * * * *"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID != 0 && agentID != 0 {
				return fmt.Errorf("use only one of --client or --agent")
			}
			if clientID == 0 && agentID == 0 {
				clientID = getUserID()
			}
			if clientID == 0 && agentID == 0 {
				return fmt.Errorf("no user configured: pass --client or --agent")
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}

			w := &visitWatcher{out: cmd.OutOrStdout()}
			if agentID != 0 {
				w.list = func(ctx context.Context) ([]*visit.Visit, error) {
					return c.ListVisitsByAgent(ctx, agentID)
				}
			} else {
				w.list = func(ctx context.Context) ([]*visit.Visit, error) {
					return c.ListVisitsByClient(ctx, clientID)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return w.run(ctx, spec)
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "client user ID (default: your user)")
	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent user ID")
	cmd.Flags().StringVar(&spec, "cron", defaultWatchSpec, "poll schedule (cron spec or @every duration)")

	return cmd
}

// visitWatcher reports visits whose status changed since the previous poll.
type visitWatcher struct {
	list func(ctx context.Context) ([]*visit.Visit, error)
	out  io.Writer

	guard fetch.Guard

	mu     sync.Mutex
	seen   map[int64]string
	primed bool
}

// run polls once, then on every tick of spec until ctx is done.
func (w *visitWatcher) run(ctx context.Context, spec string) error {
	if err := w.poll(ctx); err != nil {
		return err
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() { w.tick(ctx) }); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	slog.Info("watching visits", "cron", spec)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// tick polls unless the previous poll is still running.
func (w *visitWatcher) tick(ctx context.Context) {
	ran := w.guard.TryRun(func() {
		if err := w.poll(ctx); err != nil {
			slog.Warn("watch poll failed", "error", err)
			fmt.Fprintf(w.out, "! %s\n", client.UserMessage(err))
		}
	})
	if !ran {
		slog.Debug("watch poll skipped, previous poll still running")
	}
}

// poll fetches the visits and prints new visits and status changes. The
// first poll only records what exists.
func (w *visitWatcher) poll(ctx context.Context) error {
	visits, err := w.list(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.seen == nil {
		w.seen = make(map[int64]string, len(visits))
	}
	for _, v := range visits {
		prev, known := w.seen[v.ID]
		w.seen[v.ID] = v.RawStatus
		if !w.primed {
			continue
		}
		switch {
		case !known:
			fmt.Fprintf(w.out, "+ Visit #%d on %s: %s\n", v.ID, formatTime(v.ScheduledAt.Time), v.StatusLabel())
		case prev != v.RawStatus:
			from := visit.ParseStatus(prev).Label()
			if visit.ParseStatus(prev) == visit.StatusUnknown {
				from = orDash(prev)
			}
			fmt.Fprintf(w.out, "~ Visit #%d: %s → %s\n", v.ID, from, v.StatusLabel())
		}
	}
	if !w.primed {
		w.primed = true
		fmt.Fprintf(w.out, "Watching %d visits.\n", len(visits))
	}
	return nil
}
