package scc

import (
	"go.uber.org/zap"

	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// hnode is a copy of a BDD node. Children are node ids.
type hnode struct {
	level, low, high int
}

// furthest computes, for every node of a BDD, the largest Hamming distance
// between the pivot and a full valuation accepted by the node, and the
// branch leading to it. Nodes are addressed by their id in the BDD.
type furthest struct {
	pivot  []bool
	nodes  []hnode
	dist   []int  // -1 until resolved
	choice []bool // true when the high branch is chosen
}

type hentry struct {
	id int
	hnode
}

// FurthestWithin returns the state of choice that is the furthest from pivot
// in Hamming distance. Ties are broken in favor of false values, in variable
// order. The pivot must be a single state and choice must not be empty.
func FurthestWithin(pivot, choice symbolic.Set, opts ...Option) symbolic.Set {
	return newEngine(Config{}, opts).furthestWithin(pivot, choice)
}

func (e *engine) furthestWithin(pivot, choice symbolic.Set) symbolic.Set {
	ctx := choice.Context()
	if ctx.NumParameterVariables() != 0 {
		panic("scc: Hamming heuristic on a set with parameters")
	}
	if choice.IsEmpty() {
		panic("scc: Hamming heuristic with an empty choice set")
	}
	if !pivot.IsSingleton() {
		panic("scc: Hamming heuristic with a pivot that is not a singleton")
	}
	h := &furthest{pivot: pivot.Valuation()}
	root := *choice.Node()
	var snapshot []hentry
	err := ctx.BDD().Allnodes(func(id, level, low, high int) error {
		snapshot = append(snapshot, hentry{id, hnode{level, low, high}})
		return nil
	}, choice.Node())
	if err != nil {
		panic("scc: " + err.Error())
	}
	size := 0
	for _, n := range snapshot {
		size = max(size, n.id+1)
	}
	h.nodes = make([]hnode, size)
	h.dist = make([]int, size)
	h.choice = make([]bool, size)
	for _, n := range snapshot {
		h.nodes[n.id] = n.hnode
		h.dist[n.id] = -1
	}
	valuation := h.path(root)
	res := ctx.MkState(valuation)
	if !res.IsSingleton() || !res.IsSubset(choice) {
		panic("scc: Hamming heuristic chose a state outside of the choice set")
	}
	if ce := e.hamming.Check(zap.DebugLevel, "furthest state"); ce != nil {
		ce.Write(zap.Int("distance", h.best(root)+h.nodes[root].level), zap.Int("nodes", len(snapshot)))
	}
	return res
}

// best returns the largest distance between the pivot and a valuation of
// the variables at or below the level of n that is accepted by n. The result
// is -1 for the constant false.
func (h *furthest) best(n int) int {
	switch {
	case n == 0:
		return -1
	case n == 1:
		return 0
	case h.dist[n] >= 0:
		return h.dist[n]
	}
	node := h.nodes[n]
	low := h.score(node, node.low, false)
	high := h.score(node, node.high, true)
	h.choice[n] = high > low
	h.dist[n] = max(low, high)
	return h.dist[n]
}

// score is the best distance obtained by setting the variable of node to
// value and continuing with child. Skipped variables disagree with the pivot.
func (h *furthest) score(node hnode, child int, value bool) int {
	d := h.best(child)
	if d < 0 {
		return -1
	}
	if h.pivot[node.level] != value {
		d++
	}
	return d + h.nodes[child].level - node.level - 1
}

// path returns the valuation following the best branches from root.
// Variables that are not tested on the path take the value opposite to the
// pivot.
func (h *furthest) path(root int) []bool {
	res := make([]bool, len(h.pivot))
	for k, b := range h.pivot {
		res[k] = !b
	}
	h.best(root)
	for n := root; n > 1; {
		node := h.nodes[n]
		res[node.level] = h.choice[n]
		if h.choice[n] {
			n = node.high
		} else {
			n = node.low
		}
	}
	return res
}
