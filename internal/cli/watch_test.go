package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/evcraddock/house-market/internal/localtime"
	"github.com/evcraddock/house-market/internal/visit"
)

// scriptedVisits returns one scripted result per call.
type scriptedVisits struct {
	results [][]*visit.Visit
	calls   int
	err     error
}

func (s *scriptedVisits) list(ctx context.Context) ([]*visit.Visit, error) {
	if s.err != nil {
		return nil, s.err
	}
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	return s.results[i], nil
}

func watchedVisit(id int64, status string) *visit.Visit {
	at, _ := localtime.Parse("2099-06-09T10:00:00")
	return &visit.Visit{ID: id, ScheduledAt: localtime.New(at), RawStatus: status}
}

func TestWatcherFirstPollOnlyPrimes(t *testing.T) {
	src := &scriptedVisits{results: [][]*visit.Visit{
		{watchedVisit(1, "PENDIENTE"), watchedVisit(2, "CONFIRMADA")},
	}}
	var out bytes.Buffer
	w := &visitWatcher{list: src.list, out: &out}

	if err := w.poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if got := out.String(); got != "Watching 2 visits.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	src := &scriptedVisits{results: [][]*visit.Visit{
		{watchedVisit(1, "PENDIENTE"), watchedVisit(2, "CONFIRMADA")},
		{watchedVisit(1, "CONFIRMADA"), watchedVisit(2, "CONFIRMADA"), watchedVisit(3, "PENDIENTE")},
		{watchedVisit(1, "CONFIRMADA"), watchedVisit(2, "CONFIRMADA"), watchedVisit(3, "PENDIENTE")},
	}}
	var out bytes.Buffer
	w := &visitWatcher{list: src.list, out: &out}

	for i := 0; i < 2; i++ {
		if err := w.poll(context.Background()); err != nil {
			t.Fatalf("poll %d: %v", i, err)
		}
	}
	got := out.String()
	if !strings.Contains(got, "~ Visit #1: Pending → Confirmed") {
		t.Errorf("missing status change:\n%s", got)
	}
	if !strings.Contains(got, "+ Visit #3") {
		t.Errorf("missing new visit:\n%s", got)
	}
	if strings.Contains(got, "Visit #2") {
		t.Errorf("unchanged visit reported:\n%s", got)
	}

	out.Reset()
	if err := w.poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("quiet poll printed %q", out.String())
	}
}

func TestWatcherUnknownStatusShownRaw(t *testing.T) {
	src := &scriptedVisits{results: [][]*visit.Visit{
		{watchedVisit(1, "EN_REVISION")},
		{watchedVisit(1, "CANCELADA")},
	}}
	var out bytes.Buffer
	w := &visitWatcher{list: src.list, out: &out}

	_ = w.poll(context.Background())
	_ = w.poll(context.Background())
	if !strings.Contains(out.String(), "EN_REVISION → Cancelled") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestWatcherTickReportsErrors(t *testing.T) {
	src := &scriptedVisits{err: errors.New("connection refused")}
	var out bytes.Buffer
	w := &visitWatcher{list: src.list, out: &out}

	w.tick(context.Background())
	if !strings.Contains(out.String(), "! connection refused") {
		t.Errorf("output = %q", out.String())
	}
}

func TestWatcherTickSkipsWhileBusy(t *testing.T) {
	src := &scriptedVisits{results: [][]*visit.Visit{{watchedVisit(1, "PENDIENTE")}}}
	var out bytes.Buffer
	w := &visitWatcher{list: src.list, out: &out}

	w.guard.TryRun(func() {
		w.tick(context.Background())
	})
	if src.calls != 0 {
		t.Errorf("list called %d times while busy, want 0", src.calls)
	}

	w.tick(context.Background())
	if src.calls != 1 {
		t.Errorf("list called %d times, want 1", src.calls)
	}
}

func TestWatchRejectsBadCron(t *testing.T) {
	src := &scriptedVisits{results: [][]*visit.Visit{{}}}
	w := &visitWatcher{list: src.list, out: &bytes.Buffer{}}

	if err := w.run(context.Background(), "every so often"); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestWatchSelectorsExclusive(t *testing.T) {
	if _, err := executeCommand("watch", "--client", "3", "--agent", "7"); err == nil {
		t.Error("expected error for --client with --agent")
	}
}
