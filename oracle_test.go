package scc

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sybila/biodivine-lib-algo-scc/network"
	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// explicit is the state-transition graph of a network with states numbered
// from 0 to 2^n-1. The first variable is the most significant bit.
type explicit struct {
	n   int
	adj [][]int
}

func newExplicit(net *network.Network) *explicit {
	n := net.NumVars()
	g := &explicit{n: n, adj: make([][]int, 1<<n)}
	for k := range g.adj {
		state := g.state(k)
		for _, v := range net.Variables() {
			if network.Eval(net.Update(v), state, nil) != state[v] {
				g.adj[k] = append(g.adj[k], k^(1<<(n-1-int(v))))
			}
		}
	}
	return g
}

func (g *explicit) state(k int) []bool {
	res := make([]bool, g.n)
	for v := range res {
		res[v] = k&(1<<(g.n-1-v)) != 0
	}
	return res
}

func (g *explicit) key(k int) string {
	return stateKey(g.state(k))
}

// tarjan returns the SCCs of g.
func (g *explicit) tarjan() [][]int {
	t := &tarjan{g: g, index: make([]int, len(g.adj)), low: make([]int, len(g.adj)), onStack: make([]bool, len(g.adj))}
	for k := range t.index {
		t.index[k] = -1
	}
	for k := range g.adj {
		if t.index[k] == -1 {
			t.connect(k)
		}
	}
	return t.sccs
}

type tarjan struct {
	g       *explicit
	index   []int
	low     []int
	onStack []bool
	stack   []int
	next    int
	sccs    [][]int
}

func (t *tarjan) connect(v int) {
	t.index[v], t.low[v] = t.next, t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true
	for _, w := range t.g.adj[v] {
		if t.index[w] == -1 {
			t.connect(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.onStack[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}
	if t.low[v] == t.index[v] {
		var scc []int
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}

// components returns the fingerprints of the SCCs of g with at least min
// states, sorted.
func (g *explicit) components(minSize int) []string {
	var res []string
	for _, scc := range g.tarjan() {
		if len(scc) < minSize {
			continue
		}
		keys := make([]string, len(scc))
		for k, s := range scc {
			keys[k] = g.key(s)
		}
		slices.Sort(keys)
		res = append(res, strings.Join(keys, ","))
	}
	slices.Sort(res)
	return res
}

func stateKey(state []bool) string {
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

// fingerprint lists the states of s, sorted and separated by commas.
func fingerprint(t *testing.T, s symbolic.Set) string {
	t.Helper()
	states, complete := s.States(1 << 12)
	require.True(t, complete)
	keys := make([]string, len(states))
	for k, st := range states {
		keys[k] = stateKey(st)
	}
	slices.Sort(keys)
	return strings.Join(keys, ",")
}

func fingerprints(t *testing.T, sccs []symbolic.Set) []string {
	t.Helper()
	res := make([]string, len(sccs))
	for k, s := range sccs {
		res[k] = fingerprint(t, s)
	}
	slices.Sort(res)
	return res
}

var varnames = []string{"a", "b", "c", "d", "e", "f"}

func randomExpr(r *rand.Rand, n, depth int) network.Expr {
	if depth == 0 || r.IntN(4) == 0 {
		var e network.Expr = network.Var{ID: network.VariableID(r.IntN(n))}
		if r.IntN(2) == 0 {
			e = network.Not{X: e}
		}
		return e
	}
	op := []network.Op{network.And, network.Or, network.Xor}[r.IntN(3)]
	return network.Binary{Op: op, Left: randomExpr(r, n, depth-1), Right: randomExpr(r, n, depth-1)}
}

// randomNetwork returns a network with n variables and random update
// functions, using a fixed seed.
func randomNetwork(t *testing.T, seed uint64, n int) *network.Network {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, 17))
	net, err := network.New(varnames[:n])
	require.NoError(t, err)
	for _, v := range net.Variables() {
		require.NoError(t, net.SetUpdate(v, randomExpr(r, n, 3)))
	}
	return net
}
