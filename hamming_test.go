package scc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sybila/biodivine-lib-algo-scc/network"
	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

func TestFurthestWithin(t *testing.T) {
	g := mkgraph(t, toggle)
	var states [4]struct {
		valuation []bool
		key       string
	}
	for k := range states {
		states[k].valuation = []bool{k&2 != 0, k&1 != 0}
		states[k].key = stateKey(states[k].valuation)
	}
	for _, p := range states {
		pivot := g.MkState(p.valuation)
		// a singleton choice set is always chosen
		for _, c := range states {
			choice := g.MkState(c.valuation)
			assert.True(t, FurthestWithin(pivot, choice).Equal(choice), "%s in {%s}", p.key, c.key)
		}
		// the complement is chosen in the full state space
		var want []bool
		for _, b := range p.valuation {
			want = append(want, !b)
		}
		got := FurthestWithin(pivot, g.Unit())
		assert.Equal(t, want, got.Valuation(), p.key)
	}
}

func TestFurthestDistance(t *testing.T) {
	net := randomNetwork(t, 7, 6)
	g := mkgraphFrom(t, net)
	exp := newExplicit(net)
	distance := func(a, b []bool) int {
		d := 0
		for k := range a {
			if a[k] != b[k] {
				d++
			}
		}
		return d
	}
	// choice sets of various shapes: forward reachable sets of each state
	for k := range exp.adj {
		pivot := g.MkState(exp.state(k))
		choice := Reach(g, pivot, Forward, Saturation)
		got := FurthestWithin(pivot, choice)
		require.True(t, got.IsSingleton())
		require.True(t, got.IsSubset(choice))
		states, complete := choice.States(1 << 6)
		require.True(t, complete)
		best := 0
		for _, s := range states {
			best = max(best, distance(exp.state(k), s))
		}
		assert.Equal(t, best, distance(exp.state(k), got.Valuation()), exp.key(k))
	}
}

func TestFurthestPanics(t *testing.T) {
	g := mkgraph(t, toggle)
	assert.Panics(t, func() { FurthestWithin(g.Unit(), g.Unit()) })
	assert.Panics(t, func() { FurthestWithin(g.MkState([]bool{true, true}), g.Empty()) })
}

func mkgraphFrom(t *testing.T, net *network.Network) *symbolic.Graph {
	t.Helper()
	g, err := symbolic.NewGraph(net)
	require.NoError(t, err)
	return g
}
