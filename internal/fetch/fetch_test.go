package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestStateLifecycle(t *testing.T) {
	var s State[[]string]
	if s.Status != Idle {
		t.Fatalf("status = %s, want idle", s.Status)
	}

	gen := s.Start()
	if !s.Loading() {
		t.Fatal("expected loading after Start")
	}
	if !s.Finish(gen, []string{"a"}, nil) {
		t.Fatal("Finish rejected current generation")
	}
	if s.Status != Loaded || len(s.Data) != 1 {
		t.Errorf("state = %+v", s)
	}

	gen = s.Start()
	s.Finish(gen, nil, errors.New("offline"))
	if s.Status != Failed || s.Err == nil {
		t.Errorf("state = %+v, want failed", s)
	}
	if len(s.Data) != 1 {
		t.Error("failed load should keep previous data")
	}
}

func TestStateDiscardsStale(t *testing.T) {
	var s State[int]
	first := s.Start()
	second := s.Start()

	if s.Finish(first, 1, nil) {
		t.Error("stale generation accepted")
	}
	if !s.Loading() {
		t.Error("stale result should leave the newer load running")
	}
	if !s.Finish(second, 2, nil) || s.Data != 2 {
		t.Errorf("data = %d, want 2", s.Data)
	}
}

func TestStateAbandon(t *testing.T) {
	var s State[int]
	gen := s.Start()
	s.Abandon()
	if s.Status != Idle {
		t.Errorf("status = %s, want idle", s.Status)
	}
	if s.Finish(gen, 5, nil) {
		t.Error("abandoned load accepted")
	}
}

func TestPagerLoadingFlag(t *testing.T) {
	p := NewPager[int](2)

	page, size, gen, ok := p.Begin()
	if !ok || page != 0 || size != 2 {
		t.Fatalf("Begin = %d, %d, %v", page, size, ok)
	}
	if _, _, _, ok := p.Begin(); ok {
		t.Fatal("second Begin should be blocked while loading")
	}

	p.Complete(gen, []int{1, 2}, false, nil)
	page, _, gen, ok = p.Begin()
	if !ok || page != 1 {
		t.Fatalf("next page = %d, %v", page, ok)
	}
	p.Complete(gen, []int{3}, true, nil)

	if !p.Done() {
		t.Error("expected done after last page")
	}
	if _, _, _, ok := p.Begin(); ok {
		t.Error("Begin after last page should be refused")
	}
	if len(p.Items) != 3 {
		t.Errorf("items = %v", p.Items)
	}
}

func TestPagerErrorAllowsRetry(t *testing.T) {
	p := NewPager[int](5)
	_, _, gen, _ := p.Begin()
	p.Complete(gen, nil, false, errors.New("timeout"))
	if p.Err == nil || p.Loading() {
		t.Fatalf("pager = %+v", p)
	}
	page, _, _, ok := p.Begin()
	if !ok || page != 0 {
		t.Errorf("retry Begin = %d, %v", page, ok)
	}
}

func TestPagerResetDiscardsInFlight(t *testing.T) {
	p := NewPager[int](5)
	_, _, gen, _ := p.Begin()
	p.Reset()

	if p.Complete(gen, []int{1}, false, nil) {
		t.Error("result from before Reset accepted")
	}
	if len(p.Items) != 0 || p.Loading() {
		t.Errorf("pager = %+v", p)
	}
}

func TestPagerAll(t *testing.T) {
	pages := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	calls := 0
	fn := func(ctx context.Context, page, size int) ([]string, bool, error) {
		calls++
		return pages[page], page == len(pages)-1, nil
	}

	p := NewPager[string](2)
	items, err := p.All(context.Background(), fn)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(items) != 5 || calls != 3 {
		t.Errorf("items = %v, calls = %d", items, calls)
	}
}

func TestPagerAllStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	fn := func(ctx context.Context, page, size int) ([]int, bool, error) {
		if page == 1 {
			return nil, false, boom
		}
		return []int{page}, false, nil
	}

	p := NewPager[int](1)
	items, err := p.All(context.Background(), fn)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("items = %v", items)
	}
}

func TestGuardDropsOverlap(t *testing.T) {
	var g Guard
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		g.TryRun(func() {
			close(started)
			<-release
		})
	}()

	<-started
	if !g.Busy() {
		t.Error("expected busy while first run is active")
	}
	if g.TryRun(func() { t.Error("overlapping run executed") }) {
		t.Error("TryRun reported overlapping run")
	}
	close(release)
	wg.Wait()

	ran := false
	if !g.TryRun(func() { ran = true }) || !ran {
		t.Error("expected run after the first finished")
	}
}
