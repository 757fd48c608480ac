// Package fetch tracks the lifecycle of backend reads made by screens.
//
// Each load is tagged with a generation. A response whose generation is no
// longer current is discarded, so a slow reply can never overwrite a newer
// one.
package fetch

// Status is where a read is in its lifecycle.
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State holds the latest result of a read.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
	gen    uint64
}

// Start marks a new load in flight and returns its generation.
// Data from the previous load is kept until the new one lands.
func (s *State[T]) Start() uint64 {
	s.gen++
	s.Status = Loading
	s.Err = nil
	return s.gen
}

// Finish records the result of the load tagged gen. It reports false and
// changes nothing when gen is stale.
func (s *State[T]) Finish(gen uint64, data T, err error) bool {
	if gen != s.gen {
		return false
	}
	if err != nil {
		s.Status = Failed
		s.Err = err
		return true
	}
	s.Status = Loaded
	s.Data = data
	return true
}

// Abandon drops any load in flight.
func (s *State[T]) Abandon() {
	s.gen++
	if s.Status == Loading {
		s.Status = Idle
	}
}

// Loading reports whether a load is in flight.
func (s *State[T]) Loading() bool {
	return s.Status == Loading
}
