// Package symbolic encodes the asynchronous state space of a Boolean network
// using BDDs. A state is a valuation of the network variables; a transition
// changes the value of exactly one variable v, to the value given by the
// update function of v. Sets of states (Set) and restrictions of the
// transition graph to a set of states (Graph) are immutable values.
//
// Networks with parameters are encoded by adding one BDD variable per
// parameter after the state variables, so that a Set is in fact a set of
// pairs (state, color).
package symbolic

import (
	"fmt"

	"github.com/sybila/biodivine-lib-algo-scc/bdd"
	"github.com/sybila/biodivine-lib-algo-scc/network"
)

// Context holds the BDD encoding of a network. Sets and graphs built from
// different contexts cannot be mixed.
type Context struct {
	net       *network.Network
	bdd       *bdd.BDD
	nvars     int
	nparams   int
	updates   []bdd.Node // update function f_v of each variable
	canFlip   []bdd.Node // x_v xor f_v, the states where v can change
	varsets   []bdd.Node // singleton varset {v}, used by flip
	paramVars bdd.Node
}

var bddops = map[network.Op]bdd.Operator{
	network.And: bdd.OPand,
	network.Or:  bdd.OPor,
	network.Xor: bdd.OPxor,
	network.Imp: bdd.OPimp,
	network.Iff: bdd.OPbiimp,
}

// NewContext encodes net. The options are passed to the underlying BDD.
func NewContext(net *network.Network, options ...bdd.Option) (*Context, error) {
	nvars, nparams := net.NumVars(), net.NumParameters()
	if nvars == 0 {
		return nil, fmt.Errorf("network %q has no variable", net.Name)
	}
	b, err := bdd.New(nvars+nparams, options...)
	if err != nil {
		return nil, err
	}
	c := &Context{
		net:     net,
		bdd:     b,
		nvars:   nvars,
		nparams: nparams,
		updates: make([]bdd.Node, nvars),
		canFlip: make([]bdd.Node, nvars),
		varsets: make([]bdd.Node, nvars),
	}
	params := make([]int, nparams)
	for k := range params {
		params[k] = nvars + k
	}
	c.paramVars = b.Makeset(params)
	for _, v := range net.Variables() {
		c.updates[v] = c.compile(net.Update(v))
		c.canFlip[v] = b.Apply(b.Ithvar(int(v)), c.updates[v], bdd.OPxor)
		c.varsets[v] = b.Makeset([]int{int(v)})
	}
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("encoding network %q: %w", net.Name, err)
	}
	return c, nil
}

func (c *Context) compile(e network.Expr) bdd.Node {
	b := c.bdd
	switch x := e.(type) {
	case network.Const:
		return b.From(x.Value)
	case network.Var:
		return b.Ithvar(int(x.ID))
	case network.Param:
		return b.Ithvar(c.nvars + int(x.ID))
	case network.Not:
		return b.Not(c.compile(x.X))
	case network.Binary:
		return b.Apply(c.compile(x.Left), c.compile(x.Right), bddops[x.Op])
	}
	panic(fmt.Sprintf("unknown expression %T", e))
}

// NewGraph encodes net and returns its full state-transition graph.
func NewGraph(net *network.Network, options ...bdd.Option) (*Graph, error) {
	c, err := NewContext(net, options...)
	if err != nil {
		return nil, err
	}
	return c.Graph(), nil
}

// Graph returns the full state-transition graph, over all states and colors.
func (c *Context) Graph() *Graph {
	return &Graph{ctx: c, unit: c.wrap(c.bdd.True())}
}

// Network returns the encoded network.
func (c *Context) Network() *network.Network {
	return c.net
}

// BDD returns the BDD holding every set of c.
func (c *Context) BDD() *bdd.BDD {
	return c.bdd
}

// Err returns the error status of the underlying BDD. Once set, every
// subsequent set is invalid.
func (c *Context) Err() error {
	return c.bdd.Err()
}

// NumVars returns the number of state variables.
func (c *Context) NumVars() int {
	return c.nvars
}

// NumParameterVariables returns the number of BDD variables used to encode
// colors.
func (c *Context) NumParameterVariables() int {
	return c.nparams
}

func (c *Context) wrap(n bdd.Node) Set {
	return Set{ctx: c, node: n}
}

// flip returns the states whose neighbour along v belongs to x. The result
// is the image of x by the involution that negates variable v.
func (c *Context) flip(v network.VariableID, x bdd.Node) bdd.Node {
	b := c.bdd
	low := b.AppEx(x, b.NIthvar(int(v)), bdd.OPand, c.varsets[v])
	high := b.AppEx(x, b.Ithvar(int(v)), bdd.OPand, c.varsets[v])
	return b.Ite(b.Ithvar(int(v)), low, high)
}

// literal returns the set of pairs where v has the given value.
func (c *Context) literal(v network.VariableID, value bool) bdd.Node {
	if value {
		return c.bdd.Ithvar(int(v))
	}
	return c.bdd.NIthvar(int(v))
}
