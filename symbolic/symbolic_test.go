package symbolic

import (
	"bytes"
	"math/big"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sybila/biodivine-lib-algo-scc/network"
)

func mkgraph(t *testing.T, model string) *Graph {
	t.Helper()
	net, err := network.ParseBnet(strings.NewReader(model))
	require.NoError(t, err)
	g, err := NewGraph(net)
	require.NoError(t, err)
	return g
}

func key(state []bool) string {
	var sb strings.Builder
	for _, b := range state {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func keys(t *testing.T, s Set) []string {
	t.Helper()
	states, complete := s.States(1 << 10)
	require.True(t, complete)
	res := make([]string, len(states))
	for k, st := range states {
		res[k] = key(st)
	}
	return res
}

func allStates(n int) [][]bool {
	var res [][]bool
	for k := 0; k < 1<<n; k++ {
		st := make([]bool, n)
		for v := range st {
			st[v] = k&(1<<(n-1-v)) != 0
		}
		res = append(res, st)
	}
	return res
}

// successors computes the asynchronous successors of state explicitly.
func successors(net *network.Network, state []bool) []string {
	var res []string
	for _, v := range net.Variables() {
		if network.Eval(net.Update(v), state, nil) != state[v] {
			next := slices.Clone(state)
			next[v] = !next[v]
			res = append(res, key(next))
		}
	}
	slices.Sort(res)
	return res
}

func TestToggle(t *testing.T) {
	g := mkgraph(t, "A, !A\nB, B\n")
	unit := g.Unit()
	assert.Equal(t, big.NewInt(4), unit.Cardinality())
	assert.Equal(t, 0, g.NumParameterVariables())
	assert.Equal(t, []string{"00", "01", "10", "11"}, keys(t, unit))

	s00 := g.MkState([]bool{false, false})
	require.True(t, s00.IsSingleton())
	assert.Equal(t, []string{"10"}, keys(t, g.Post(s00)))
	assert.Equal(t, []string{"10"}, keys(t, g.Pre(s00)))
	assert.True(t, g.VarPost(1, s00).IsEmpty())
	assert.True(t, g.CanPostWithin(unit).Equal(unit))
	assert.True(t, g.CanPreWithin(s00).IsEmpty())

	b0 := g.FixVariable(1, false)
	a0 := g.FixVariable(0, false)
	assert.True(t, g.VarCanPostOut(0, b0).IsEmpty())
	assert.True(t, g.VarCanPostOut(0, a0).Equal(a0))
	assert.True(t, g.VarPostOut(0, b0).IsEmpty())
	assert.Equal(t, []string{"10", "11"}, keys(t, g.VarPostOut(0, a0)))

	pick := unit.PickSingleton()
	assert.True(t, pick.IsSingleton())
	assert.Equal(t, []bool{false, false}, pick.Valuation())
	assert.True(t, unit.Contains([]bool{true, true}))
	assert.True(t, g.Empty().PickSingleton().IsEmpty())
	assert.Nil(t, g.Empty().Valuation())
}

func TestRestrict(t *testing.T) {
	g := mkgraph(t, "A, !A\nB, B\n")
	b0 := g.FixVariable(1, false)
	h := g.Restrict(b0)
	assert.True(t, h.Unit().Equal(b0))
	// transitions leaving the unit set are not edges of the restriction
	s := h.MkState([]bool{false, true})
	assert.True(t, s.IsEmpty())
	a0b0 := h.MkSubspace(map[network.VariableID]bool{0: false})
	assert.Equal(t, []string{"00"}, keys(t, a0b0))
	assert.Equal(t, []string{"10"}, keys(t, h.Post(a0b0)))
	assert.True(t, h.CanPostWithin(h.Unit()).Equal(b0))
}

func TestTransitions(t *testing.T) {
	const model = `
A, !B
B, A ^ C
C, A & !C | B
`
	net, err := network.ParseBnet(strings.NewReader(model))
	require.NoError(t, err)
	g, err := NewGraph(net)
	require.NoError(t, err)
	pred := map[string][]string{}
	for _, st := range allStates(3) {
		for _, next := range successors(net, st) {
			pred[next] = append(pred[next], key(st))
		}
	}
	for _, st := range allStates(3) {
		s := g.MkState(st)
		if diff := cmp.Diff(successors(net, st), keys(t, g.Post(s))); diff != "" {
			t.Errorf("Post(%s) mismatch (-want +got):\n%s", key(st), diff)
		}
		want := pred[key(st)]
		slices.Sort(want)
		if diff := cmp.Diff(want, keys(t, g.Pre(s))); diff != "" {
			t.Errorf("Pre(%s) mismatch (-want +got):\n%s", key(st), diff)
		}
	}
	require.NoError(t, g.Context().Err())
}

func TestSetAlgebra(t *testing.T) {
	g := mkgraph(t, "A, A\nB, B\nC, C\n")
	a := g.FixVariable(0, true)
	b := g.FixVariable(1, true)
	assert.Equal(t, big.NewInt(6), a.Union(b).Cardinality())
	assert.Equal(t, big.NewInt(2), a.Intersect(b).Cardinality())
	assert.Equal(t, big.NewInt(2), a.Minus(b).Cardinality())
	assert.True(t, a.Intersect(b).IsSubset(a))
	assert.False(t, a.IsSubset(b))
	assert.False(t, a.IsSingleton())
	assert.Equal(t, 1, a.SymbolicSize())
	assert.Equal(t, "Set(cardinality=4, nodes=1)", a.String())

	states, complete := g.Unit().States(3)
	assert.False(t, complete)
	assert.Len(t, states, 3)

	var buf bytes.Buffer
	require.NoError(t, a.Intersect(b).WriteDot(&buf))
	assert.Contains(t, buf.String(), "digraph")
	assert.Contains(t, buf.String(), ">B<")

	other := mkgraph(t, "A, A\nB, B\nC, C\n")
	assert.Panics(t, func() { a.Union(other.Unit()) })
	assert.Panics(t, func() { g.MkState([]bool{true}) })
}

func TestColored(t *testing.T) {
	net, err := network.ParseYAML(strings.NewReader(`
parameters: [p]
variables:
  - name: A
    update: p
  - name: B
    update: "!B"
`))
	require.NoError(t, err)
	g, err := NewGraph(net)
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumParameterVariables())
	assert.Equal(t, big.NewInt(8), g.Unit().Cardinality())
	assert.Len(t, keys(t, g.Unit()), 4)

	s := g.MkState([]bool{false, false})
	assert.Equal(t, big.NewInt(2), s.Cardinality())
	assert.False(t, s.IsSingleton())
	assert.True(t, s.PickSingleton().IsSingleton())
	// A becomes true only for the color p
	assert.Equal(t, []string{"01", "10"}, keys(t, g.Post(s)))
	assert.Equal(t, big.NewInt(3), g.Post(s).Cardinality())
}
