package scc

import (
	"fmt"

	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// FwdBwd returns all the SCCs of g, trivial ones included, using the basic
// forward-backward algorithm: the SCC of a pivot is the intersection of its
// forward and backward reachable sets. It is much slower than a chain
// decomposition and is used as a reference.
func FwdBwd(g *symbolic.Graph, strategy ReachStrategy, opts ...Option) ([]symbolic.Set, error) {
	if g.NumParameterVariables() != 0 {
		return nil, fmt.Errorf("%w: %d parameter variables", ErrColoredGraph, g.NumParameterVariables())
	}
	e := newEngine(Config{Reachability: strategy}, opts)
	var res []symbolic.Set
	for remaining := g.Unit(); !remaining.IsEmpty(); {
		view := g.Restrict(remaining)
		pivot := remaining.PickSingleton()
		fwd := e.reachability(view, pivot, Forward).set
		bwd := e.reachability(view, pivot, Backward).set
		scc := fwd.Intersect(bwd)
		res = append(res, scc)
		remaining = remaining.Minus(scc)
		if err := g.Context().Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEngine, err)
		}
	}
	return res, nil
}
