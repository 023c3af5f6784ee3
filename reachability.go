package scc

import (
	"slices"

	"go.uber.org/zap"

	"github.com/sybila/biodivine-lib-algo-scc/network"
	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// Direction is the direction of a reachability computation.
type Direction int

const (
	// Forward follows transitions from source to target.
	Forward Direction = iota
	// Backward follows transitions from target to source.
	Backward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// reachResult is the result of a reachability computation. The last layer
// is only meaningful with the Layered strategy; it is the set of states
// added at the last step (the initial set if nothing was added).
type reachResult struct {
	set   symbolic.Set
	last  symbolic.Set
	steps int
}

// Reach returns the smallest set of states of g containing initial and
// closed under the transitions of g, in the given direction.
func Reach(g *symbolic.Graph, initial symbolic.Set, dir Direction, strategy ReachStrategy, opts ...Option) symbolic.Set {
	e := newEngine(Config{Reachability: strategy}, opts)
	return e.reachability(g, initial, dir).set
}

func (e *engine) reachability(g *symbolic.Graph, initial symbolic.Set, dir Direction) reachResult {
	debug(e.reach, "starting reachability", initial,
		zap.Stringer("direction", dir), zap.Stringer("strategy", e.cfg.Reachability))
	var res reachResult
	if e.cfg.Reachability == Layered {
		res = layered(g, initial, dir)
	} else {
		res = saturation(g, initial, dir)
	}
	e.obs.ReachabilityDone(dir, e.cfg.Reachability, res.steps)
	debug(e.reach, "reachability finished", res.set,
		zap.Stringer("direction", dir), zap.Int("steps", res.steps))
	return res
}

func layered(g *symbolic.Graph, initial symbolic.Set, dir Direction) reachResult {
	step := g.Post
	if dir == Backward {
		step = g.Pre
	}
	res := reachResult{set: initial, last: initial}
	for {
		next := step(res.last).Minus(res.set)
		if next.IsEmpty() {
			return res
		}
		res.set = res.set.Union(next)
		res.last = next
		res.steps++
	}
}

func saturation(g *symbolic.Graph, initial symbolic.Set, dir Direction) reachResult {
	out := g.VarPostOut
	if dir == Backward {
		out = g.VarPreOut
	}
	vars := g.Variables()
	slices.Reverse(vars)
	res := reachResult{set: initial}
	for res.saturate(vars, out) {
		res.steps++
	}
	res.last = res.set
	return res
}

// saturate adds the states reachable in one step along the first variable of
// vars that leads outside of the current set. It returns false if there is no
// such variable.
func (r *reachResult) saturate(vars []network.VariableID, out func(network.VariableID, symbolic.Set) symbolic.Set) bool {
	for _, v := range vars {
		if delta := out(v, r.set); !delta.IsEmpty() {
			r.set = r.set.Union(delta)
			return true
		}
	}
	return false
}
