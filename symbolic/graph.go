package symbolic

import (
	"fmt"

	"github.com/sybila/biodivine-lib-algo-scc/bdd"
	"github.com/sybila/biodivine-lib-algo-scc/network"
)

// Graph is the asynchronous transition graph of a network restricted to a set
// of vertices, its unit set. Edges of the restriction are the edges of the
// full graph with both endpoints in the unit set.
type Graph struct {
	ctx  *Context
	unit Set
}

// Context returns the context of g.
func (g *Graph) Context() *Context {
	return g.ctx
}

// Unit returns the set of vertices of g.
func (g *Graph) Unit() Set {
	return g.unit
}

// Empty returns the empty set.
func (g *Graph) Empty() Set {
	return g.ctx.wrap(g.ctx.bdd.False())
}

// Restrict returns the subgraph induced by s ∩ Unit.
func (g *Graph) Restrict(s Set) *Graph {
	return &Graph{ctx: g.ctx, unit: g.unit.Intersect(s)}
}

// Variables returns the state variables, in declaration order.
func (g *Graph) Variables() []network.VariableID {
	return g.ctx.net.Variables()
}

// NumVars returns the number of state variables.
func (g *Graph) NumVars() int {
	return g.ctx.nvars
}

// NumParameterVariables returns the number of BDD variables used to encode
// colors. It is zero for networks without parameters.
func (g *Graph) NumParameterVariables() int {
	return g.ctx.nparams
}

// VarPost returns the successors in g of the states of s, along transitions
// updating v.
func (g *Graph) VarPost(v network.VariableID, s Set) Set {
	c, b := g.ctx, g.ctx.bdd
	src := b.And(s.node, g.unit.node, c.canFlip[v])
	return c.wrap(b.And(c.flip(v, src), g.unit.node))
}

// VarPre returns the predecessors in g of the states of s, along transitions
// updating v.
func (g *Graph) VarPre(v network.VariableID, s Set) Set {
	c, b := g.ctx, g.ctx.bdd
	tgt := b.And(s.node, g.unit.node)
	return c.wrap(b.And(c.flip(v, tgt), c.canFlip[v], g.unit.node))
}

// Post returns the successors in g of the states of s.
func (g *Graph) Post(s Set) Set {
	res := g.Empty()
	for v := range g.ctx.nvars {
		res = res.Union(g.VarPost(network.VariableID(v), s))
	}
	return res
}

// Pre returns the predecessors in g of the states of s.
func (g *Graph) Pre(s Set) Set {
	res := g.Empty()
	for v := range g.ctx.nvars {
		res = res.Union(g.VarPre(network.VariableID(v), s))
	}
	return res
}

// VarPostOut returns the successors along v of s that are not in s.
func (g *Graph) VarPostOut(v network.VariableID, s Set) Set {
	return g.VarPost(v, s).Minus(s)
}

// VarPreOut returns the predecessors along v of s that are not in s.
func (g *Graph) VarPreOut(v network.VariableID, s Set) Set {
	return g.VarPre(v, s).Minus(s)
}

// CanPostWithin returns the states of s with at least one successor in s.
func (g *Graph) CanPostWithin(s Set) Set {
	return s.Intersect(g.Pre(s))
}

// CanPreWithin returns the states of s with at least one predecessor in s.
func (g *Graph) CanPreWithin(s Set) Set {
	return s.Intersect(g.Post(s))
}

// VarCanPostOut returns the states of s that can leave s, within g, by
// updating v.
func (g *Graph) VarCanPostOut(v network.VariableID, s Set) Set {
	return s.Intersect(g.VarPre(v, g.unit.Minus(s)))
}

// MkState returns the singleton (for every color) containing the state with
// the given valuation of the state variables.
func (g *Graph) MkState(valuation []bool) Set {
	return g.ctx.MkState(valuation).Intersect(g.unit)
}

// MkState returns the set of pairs whose state has the given valuation.
func (c *Context) MkState(valuation []bool) Set {
	if len(valuation) != c.nvars {
		panic(fmt.Sprintf("symbolic: valuation of size %d, expected %d", len(valuation), c.nvars))
	}
	if c.nparams == 0 {
		return c.wrap(c.bdd.Cube(valuation))
	}
	lits := make([]bdd.Node, c.nvars)
	for k, value := range valuation {
		lits[k] = c.literal(network.VariableID(k), value)
	}
	return c.wrap(c.bdd.And(lits...))
}

// MkSubspace returns the states of g where each variable in values has the
// given value.
func (g *Graph) MkSubspace(values map[network.VariableID]bool) Set {
	lits := []bdd.Node{g.unit.node}
	for v, value := range values {
		lits = append(lits, g.ctx.literal(v, value))
	}
	return g.ctx.wrap(g.ctx.bdd.And(lits...))
}

// FixVariable returns the states of g where v has the given value.
func (g *Graph) FixVariable(v network.VariableID, value bool) Set {
	return g.unit.Intersect(g.ctx.wrap(g.ctx.literal(v, value)))
}
