package symbolic

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/sybila/biodivine-lib-algo-scc/bdd"
	"github.com/sybila/biodivine-lib-algo-scc/network"
)

// Set is an immutable set of states (of pairs state and color for networks
// with parameters). The zero value is not a valid set.
type Set struct {
	ctx  *Context
	node bdd.Node
}

func (s Set) check(t Set) {
	if s.ctx != t.ctx {
		panic("symbolic: sets from different contexts")
	}
}

// Context returns the context of s.
func (s Set) Context() *Context {
	return s.ctx
}

// Node returns the BDD node encoding s.
func (s Set) Node() bdd.Node {
	return s.node
}

// IsEmpty reports whether s has no element.
func (s Set) IsEmpty() bool {
	return s.ctx.bdd.Equal(s.node, s.ctx.bdd.False())
}

// IsSingleton reports whether s has exactly one element.
func (s Set) IsSingleton() bool {
	return s.Cardinality().Cmp(big.NewInt(1)) == 0
}

// Cardinality returns the exact number of elements in s.
func (s Set) Cardinality() *big.Int {
	return s.ctx.bdd.Satcount(s.node)
}

// SymbolicSize returns the number of BDD nodes used to encode s.
func (s Set) SymbolicSize() int {
	return s.ctx.bdd.Nodecount(s.node)
}

// Equal reports whether s and t have the same elements.
func (s Set) Equal(t Set) bool {
	s.check(t)
	return s.ctx.bdd.Equal(s.node, t.node)
}

// Union returns s ∪ t.
func (s Set) Union(t Set) Set {
	s.check(t)
	return s.ctx.wrap(s.ctx.bdd.Apply(s.node, t.node, bdd.OPor))
}

// Intersect returns s ∩ t.
func (s Set) Intersect(t Set) Set {
	s.check(t)
	return s.ctx.wrap(s.ctx.bdd.Apply(s.node, t.node, bdd.OPand))
}

// Minus returns s \ t.
func (s Set) Minus(t Set) Set {
	s.check(t)
	return s.ctx.wrap(s.ctx.bdd.Apply(s.node, t.node, bdd.OPdiff))
}

// IsSubset reports whether s ⊆ t.
func (s Set) IsSubset(t Set) bool {
	return s.Minus(t).IsEmpty()
}

// PickSingleton returns a set with exactly one element of s, or the empty set
// if s is empty. With parameters, the element is one (state, color) pair.
func (s Set) PickSingleton() Set {
	return s.ctx.wrap(s.ctx.bdd.Fullsatone(s.node))
}

// Valuation returns the values of the state variables for one element of s,
// the one chosen by PickSingleton. It returns nil if s is empty.
func (s Set) Valuation() []bool {
	w := s.ctx.bdd.Witness(s.node)
	if w == nil {
		return nil
	}
	return w[:s.ctx.nvars]
}

// Contains reports whether state belongs to s, for some color.
func (s Set) Contains(state []bool) bool {
	return !s.Intersect(s.ctx.MkState(state)).IsEmpty()
}

var errLimit = errors.New("too many states")

// States enumerates the states of s, ignoring colors, in lexicographic order
// (false before true, first variable first). At most limit states are
// returned; the boolean result is false when s has more states than that.
func (s Set) States(limit int) ([][]bool, bool) {
	b := s.ctx.bdd
	n := s.node
	if s.ctx.nparams > 0 {
		n = b.Exist(n, s.ctx.paramVars)
	}
	var cubes [][]int
	err := b.Allsat(n, func(prof []int) error {
		if len(cubes) >= limit {
			return errLimit
		}
		cubes = append(cubes, append([]int(nil), prof[:s.ctx.nvars]...))
		return nil
	})
	complete := err == nil
	var res [][]bool
	for _, cube := range cubes {
		if !expand(cube, make([]bool, len(cube)), 0, limit, &res) {
			return res, false
		}
	}
	return res, complete
}

// expand appends to res all the states matching cube, with don't care
// entries (-1) taking both values. It returns false if limit is reached.
func expand(cube []int, cur []bool, k int, limit int, res *[][]bool) bool {
	if k == len(cube) {
		if len(*res) >= limit {
			return false
		}
		*res = append(*res, append([]bool(nil), cur...))
		return true
	}
	if cube[k] != 1 {
		cur[k] = false
		if !expand(cube, cur, k+1, limit, res) {
			return false
		}
	}
	if cube[k] != 0 {
		cur[k] = true
		if !expand(cube, cur, k+1, limit, res) {
			return false
		}
	}
	return true
}

// WriteDot writes the BDD of s in the GraphViz format, using variable names
// as labels.
func (s Set) WriteDot(w io.Writer) error {
	net := s.ctx.net
	return s.ctx.bdd.PrintDot(w, func(level int) string {
		if level < s.ctx.nvars {
			return net.VariableName(network.VariableID(level))
		}
		return net.ParameterName(network.ParameterID(level - s.ctx.nvars))
	}, s.node)
}

func (s Set) String() string {
	return fmt.Sprintf("Set(cardinality=%s, nodes=%d)", s.Cardinality(), s.SymbolicSize())
}
