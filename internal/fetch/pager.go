package fetch

import "context"

// PageFunc loads one page. last reports that no later page exists.
type PageFunc[T any] func(ctx context.Context, page, size int) (items []T, last bool, err error)

// Pager accumulates pages of a list. Only one page load runs at a time and
// nothing is requested once the last page has arrived.
type Pager[T any] struct {
	Items []T
	Err   error

	size    int
	next    int
	loading bool
	done    bool
	gen     uint64
}

// NewPager creates a pager that requests size items per page.
func NewPager[T any](size int) Pager[T] {
	if size <= 0 {
		size = 20
	}
	return Pager[T]{size: size}
}

// Begin claims the next page. ok is false while a load is running or after
// the last page.
func (p *Pager[T]) Begin() (page, size int, gen uint64, ok bool) {
	if p.loading || p.done {
		return 0, 0, 0, false
	}
	p.loading = true
	p.Err = nil
	return p.next, p.size, p.gen, true
}

// Complete records the page claimed under gen. Stale results are ignored.
func (p *Pager[T]) Complete(gen uint64, items []T, last bool, err error) bool {
	if gen != p.gen {
		return false
	}
	p.loading = false
	if err != nil {
		p.Err = err
		return true
	}
	p.Items = append(p.Items, items...)
	p.next++
	p.done = last || len(items) == 0
	return true
}

// Reset clears the list and discards any load in flight.
func (p *Pager[T]) Reset() {
	p.gen++
	p.Items = nil
	p.Err = nil
	p.next = 0
	p.loading = false
	p.done = false
}

// Loading reports whether a page load is running.
func (p *Pager[T]) Loading() bool { return p.loading }

// Done reports whether the last page has been loaded.
func (p *Pager[T]) Done() bool { return p.done }

// All loads every remaining page with fn and returns the accumulated items.
func (p *Pager[T]) All(ctx context.Context, fn PageFunc[T]) ([]T, error) {
	for {
		page, size, gen, ok := p.Begin()
		if !ok {
			return p.Items, nil
		}
		items, last, err := fn(ctx, page, size)
		p.Complete(gen, items, last, err)
		if err != nil {
			return p.Items, err
		}
		if err := ctx.Err(); err != nil {
			return p.Items, err
		}
	}
}
