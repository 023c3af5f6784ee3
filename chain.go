package scc

import (
	"context"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// task is a pending decomposition of the subgraph view. The pivot is taken
// from hint when it is not empty.
type task struct {
	view  *symbolic.Graph
	hint  symbolic.Set
	depth int
}

// Chain is a chain decomposition in progress. Components are computed on
// demand, one task at a time, by calls to Next.
type Chain struct {
	e     *engine
	stack []task
	err   error
}

// NewChain returns a decomposition of g. It returns ErrColoredGraph if g has
// parameters. With TrimStartOnly or TrimFull, the set of states of g is
// trimmed before the first task is scheduled.
func NewChain(g *symbolic.Graph, cfg Config, opts ...Option) (*Chain, error) {
	if g.NumParameterVariables() != 0 {
		return nil, fmt.Errorf("%w: %d parameter variables", ErrColoredGraph, g.NumParameterVariables())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Chain{e: newEngine(cfg, opts)}
	universe := g.Unit()
	if cfg.Trim != TrimNone {
		universe = c.e.trimming(g, universe)
	}
	if err := g.Context().Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngine, err)
	}
	if !universe.IsEmpty() {
		c.stack = append(c.stack, task{view: g.Restrict(universe), hint: g.Empty()})
	}
	return c, nil
}

// Decompose returns the non-trivial SCCs of g as a single-use sequence. The
// sequence stops early if the BDD engine fails; use NewChain and Chain.Err to
// detect this case.
func Decompose(g *symbolic.Graph, cfg Config, opts ...Option) (iter.Seq[symbolic.Set], error) {
	c, err := NewChain(g, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

// Next returns the next non-trivial SCC, or false when the decomposition is
// finished or has failed.
func (c *Chain) Next() (symbolic.Set, bool) {
	return c.next(context.Background())
}

// next is Next with a check of ctx before each task. Cancellation stops the
// decomposition with the error of ctx.
func (c *Chain) next(ctx context.Context) (symbolic.Set, bool) {
	for len(c.stack) > 0 && c.err == nil {
		if err := ctx.Err(); err != nil {
			c.err = err
			c.stack = nil
			break
		}
		t := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
		scc, found, next := c.e.step(t)
		if err := t.view.Context().Err(); err != nil {
			c.err = fmt.Errorf("%w: %w", ErrEngine, err)
			c.stack = nil
			break
		}
		c.stack = append(c.stack, next...)
		if found {
			return scc, true
		}
	}
	return symbolic.Set{}, false
}

// All returns the remaining components as a sequence.
func (c *Chain) All() iter.Seq[symbolic.Set] {
	return func(yield func(symbolic.Set) bool) {
		for {
			scc, ok := c.Next()
			if !ok || !yield(scc) {
				return
			}
		}
	}
}

// Err returns the error that stopped the decomposition, if any.
func (c *Chain) Err() error {
	return c.err
}

// Pending returns the number of tasks on the stack.
func (c *Chain) Pending() int {
	return len(c.stack)
}

// step processes one task. It returns the SCC of the pivot, whether it is
// non-trivial, and the tasks for the remaining states.
func (e *engine) step(t task) (symbolic.Set, bool, []task) {
	view := t.view
	candidates := view.Unit()
	if candidates.IsEmpty() {
		panic("scc: decomposition task with no candidate state")
	}
	e.obs.TaskStarted(t.depth)
	debug(e.chain, "task", candidates, zap.Int("depth", t.depth))

	pivot := e.pivot(t)
	fwd := e.reachability(view, pivot, Forward)
	scc := e.reachability(view.Restrict(fwd.set), pivot, Backward).set
	found := !scc.IsSingleton()
	if found {
		e.obs.ComponentFound(scc.Cardinality())
		debug(e.chain, "component", scc, zap.Int("depth", t.depth))
	}

	var next []task
	fwdRemaining := fwd.set.Minus(scc)
	if e.cfg.Trim == TrimFull {
		fwdRemaining = e.trimming(view, fwdRemaining)
	}
	if !fwdRemaining.IsEmpty() {
		next = append(next, task{
			view:  view.Restrict(fwdRemaining),
			hint:  e.forwardHint(pivot, fwd.last, fwdRemaining),
			depth: t.depth + 1,
		})
	}
	restRemaining := candidates.Minus(fwd.set)
	if e.cfg.Trim == TrimFull {
		restRemaining = e.trimming(view, restRemaining)
	}
	if !restRemaining.IsEmpty() {
		next = append(next, task{
			view:  view.Restrict(restRemaining),
			hint:  view.Pre(scc).Intersect(restRemaining),
			depth: t.depth + 1,
		})
	}
	return scc, found, next
}

func (e *engine) pivot(t task) symbolic.Set {
	if !t.hint.IsEmpty() {
		return t.hint.PickSingleton()
	}
	return t.view.Unit().PickSingleton()
}

// forwardHint returns the hint for the states reachable from pivot that are
// not in its SCC.
func (e *engine) forwardHint(pivot, last, remaining symbolic.Set) symbolic.Set {
	layer := remaining
	if e.cfg.Reachability == Layered {
		layer = last.Intersect(remaining)
	}
	if e.cfg.Pivot != PivotHamming {
		return layer
	}
	if layer.IsEmpty() {
		layer = remaining
	}
	return e.furthestWithin(pivot, layer)
}
