package scc

import (
	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// Trim removes from set the states that cannot be part of a cycle of g inside
// set: states without successor in set and states without predecessor in
// set. The removal is repeated, alternating directions, until neither
// direction removes anything. The result is an over-approximation of the
// union of the non-trivial SCCs included in set.
func Trim(g *symbolic.Graph, set symbolic.Set, opts ...Option) symbolic.Set {
	return newEngine(Config{}, opts).trimming(g, set)
}

func (e *engine) trimming(g *symbolic.Graph, set symbolic.Set) symbolic.Set {
	steps := 0
	within := [2]func(symbolic.Set) symbolic.Set{g.CanPostWithin, g.CanPreWithin}
	// stable counts the consecutive directions that removed nothing
	for k, stable := 0, 0; stable < 2 && !set.IsEmpty(); k = 1 - k {
		removed := false
		for {
			next := within[k](set)
			if next.Equal(set) {
				break
			}
			set = next
			removed = true
			steps++
		}
		if removed {
			stable = 1
		} else {
			stable++
		}
	}
	e.obs.TrimDone(steps)
	debug(e.trim, "trimming finished", set)
	return set
}
