package scc

import (
	"fmt"

	"go.uber.org/zap"
)

// TrimLevel selects when trivial states are removed by trimming.
type TrimLevel int

const (
	// TrimNone disables trimming.
	TrimNone TrimLevel = iota
	// TrimStartOnly trims the initial set of states only.
	TrimStartOnly
	// TrimFull trims every set before it is scheduled for decomposition.
	TrimFull
)

// ReachStrategy selects the algorithm used to compute reachable sets.
type ReachStrategy int

const (
	// Layered adds all the successors (or predecessors) of the last layer at
	// each step, like a breadth-first search.
	Layered ReachStrategy = iota
	// Saturation adds the states reachable by updating a single variable,
	// giving priority to the last variables.
	Saturation
)

// PivotStrategy selects how pivots are chosen in the forward part of a
// decomposition step.
type PivotStrategy int

const (
	// PivotTrivial picks any state of the hint, or of the candidate set.
	PivotTrivial PivotStrategy = iota
	// PivotHamming picks the state of the remaining forward set that is the
	// furthest, in Hamming distance, from the previous pivot.
	PivotHamming
)

var (
	trimNames  = [...]string{TrimNone: "none", TrimStartOnly: "start", TrimFull: "full"}
	reachNames = [...]string{Layered: "layered", Saturation: "saturation"}
	pivotNames = [...]string{PivotTrivial: "trivial", PivotHamming: "hamming"}
)

func (t TrimLevel) String() string {
	if t < 0 || int(t) >= len(trimNames) {
		return fmt.Sprintf("TrimLevel(%d)", int(t))
	}
	return trimNames[t]
}

func (r ReachStrategy) String() string {
	if r < 0 || int(r) >= len(reachNames) {
		return fmt.Sprintf("ReachStrategy(%d)", int(r))
	}
	return reachNames[r]
}

func (p PivotStrategy) String() string {
	if p < 0 || int(p) >= len(pivotNames) {
		return fmt.Sprintf("PivotStrategy(%d)", int(p))
	}
	return pivotNames[p]
}

func parse(kind, s string, names []string) (int, error) {
	for k, name := range names {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q, expected one of %v", ErrInvalidConfig, kind, s, names)
}

// ParseTrimLevel returns the trim level with the given name: none, start or
// full.
func ParseTrimLevel(s string) (TrimLevel, error) {
	k, err := parse("trim level", s, trimNames[:])
	return TrimLevel(k), err
}

// ParseReachStrategy returns the reachability strategy with the given name:
// layered or saturation.
func ParseReachStrategy(s string) (ReachStrategy, error) {
	k, err := parse("reachability strategy", s, reachNames[:])
	return ReachStrategy(k), err
}

// ParsePivotStrategy returns the pivot strategy with the given name: trivial
// or hamming.
func ParsePivotStrategy(s string) (PivotStrategy, error) {
	k, err := parse("pivot strategy", s, pivotNames[:])
	return PivotStrategy(k), err
}

// Config is the configuration of a decomposition. Parallelism is only used by
// Collect; values less than 2 mean a sequential computation.
type Config struct {
	Trim         TrimLevel
	Reachability ReachStrategy
	Pivot        PivotStrategy
	Parallelism  int
}

// DefaultConfig returns the fastest configuration in general: full trimming,
// saturation and the Hamming heuristic.
func DefaultConfig() Config {
	return Config{
		Trim:         TrimFull,
		Reachability: Saturation,
		Pivot:        PivotHamming,
		Parallelism:  1,
	}
}

// Validate checks that every field of c has a known value.
func (c Config) Validate() error {
	switch {
	case c.Trim < TrimNone || c.Trim > TrimFull:
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Trim)
	case c.Reachability < Layered || c.Reachability > Saturation:
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Reachability)
	case c.Pivot < PivotTrivial || c.Pivot > PivotHamming:
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Pivot)
	case c.Parallelism < 0:
		return fmt.Errorf("%w: negative parallelism %d", ErrInvalidConfig, c.Parallelism)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("trim=%s reach=%s pivot=%s", c.Trim, c.Reachability, c.Pivot)
}

// Option is the type of optional parameters of a decomposition.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	observer Observer
}

// WithLogger sets the logger used to trace a decomposition. Tasks,
// reachability runs and components are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver registers an observer notified of the progress of a
// decomposition.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

func makeoptions(opts []Option) options {
	o := options{logger: zap.NewNop(), observer: nopObserver{}}
	for _, f := range opts {
		f(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	return o
}
