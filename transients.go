package scc

import (
	"slices"
	"strings"

	"github.com/sybila/biodivine-lib-algo-scc/network"
	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// IsTrapped reports whether no transition of g leaves set.
func IsTrapped(g *symbolic.Graph, set symbolic.Set) bool {
	for _, v := range g.Variables() {
		if !g.VarCanPostOut(v, set).IsEmpty() {
			return false
		}
	}
	return true
}

// IsUniversallyTransient reports whether there is a variable v such that
// every state of set can leave set by updating v. In that case v is constant
// in every SCC included in set.
func IsUniversallyTransient(g *symbolic.Graph, set symbolic.Set) bool {
	for _, v := range g.Variables() {
		if set.IsSubset(g.VarCanPostOut(v, set)) {
			return true
		}
	}
	return false
}

// IsLongLived reports whether set is not universally transient.
func IsLongLived(g *symbolic.Graph, set symbolic.Set) bool {
	return !IsUniversallyTransient(g, set)
}

// FixedPoints returns the states of g without successor.
func FixedPoints(g *symbolic.Graph) symbolic.Set {
	return g.Unit().Minus(g.Pre(g.Unit()))
}

// Value is the value of a variable in a subspace.
type Value byte

// Possible values in a subspace.
const (
	Zero Value = '0'
	One  Value = '1'
	Any  Value = '*'
)

// Subspace gives a Value to each state variable. It denotes the set of
// states that agree with every fixed (non Any) value.
type Subspace []Value

func (s Subspace) String() string {
	var sb strings.Builder
	for _, v := range s {
		sb.WriteByte(byte(v))
	}
	return sb.String()
}

// Fixed returns the variables with a fixed value.
func (s Subspace) Fixed() map[network.VariableID]bool {
	res := make(map[network.VariableID]bool)
	for k, v := range s {
		if v != Any {
			res[network.VariableID(k)] = v == One
		}
	}
	return res
}

// EnclosingSubspace returns the smallest subspace containing set, which must
// not be empty.
func EnclosingSubspace(g *symbolic.Graph, set symbolic.Set) Subspace {
	if set.IsEmpty() {
		panic("scc: enclosing subspace of an empty set")
	}
	res := make(Subspace, g.NumVars())
	for _, v := range g.Variables() {
		canBeTrue := !set.Intersect(g.FixVariable(v, true)).IsEmpty()
		canBeFalse := !set.Intersect(g.FixVariable(v, false)).IsEmpty()
		switch {
		case canBeTrue && canBeFalse:
			res[v] = Any
		case canBeTrue:
			res[v] = One
		default:
			res[v] = Zero
		}
	}
	return res
}

// IsSubspace reports whether a is included in b: every value fixed in b is
// fixed to the same value in a.
func IsSubspace(a, b Subspace) bool {
	for k, v := range b {
		if v != Any && a[k] != v {
			return false
		}
	}
	return true
}

// Class is the dynamical role of an SCC.
type Class int

const (
	// Attractor is a trapped SCC.
	Attractor Class = iota
	// LongLived is an SCC that can be left, but not by updating always the
	// same variable.
	LongLived
	// Transient is a universally transient SCC.
	Transient
)

var classNames = [...]string{Attractor: "attractor", LongLived: "long-lived", Transient: "transient"}

func (c Class) String() string {
	return classNames[c]
}

// MarshalText encodes c as its name.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Component is a classified SCC.
type Component struct {
	Set      symbolic.Set
	Class    Class
	Subspace Subspace
}

// Classify returns the class and the enclosing subspace of each SCC of g in
// sccs, sorted by increasing number of states.
func Classify(g *symbolic.Graph, sccs []symbolic.Set) []Component {
	res := make([]Component, len(sccs))
	for k, s := range sccs {
		c := Component{Set: s, Class: Transient, Subspace: EnclosingSubspace(g, s)}
		switch {
		case IsTrapped(g, s):
			c.Class = Attractor
		case IsLongLived(g, s):
			c.Class = LongLived
		}
		res[k] = c
	}
	slices.SortStableFunc(res, func(a, b Component) int {
		return a.Set.Cardinality().Cmp(b.Set.Cardinality())
	})
	return res
}

// Basins returns the weak basin of each attractor, the states that can reach
// it, and its strong basin, the states of the weak basin that cannot reach
// any other attractor.
func Basins(g *symbolic.Graph, attractors []symbolic.Set, strategy ReachStrategy, opts ...Option) (weak, strong []symbolic.Set) {
	e := newEngine(Config{Reachability: strategy}, opts)
	for _, a := range attractors {
		weak = append(weak, e.reachability(g, a, Backward).set)
	}
	for k, w := range weak {
		s := w
		for j, other := range weak {
			if j != k {
				s = s.Minus(other)
			}
		}
		strong = append(strong, s)
	}
	return weak, strong
}

// SortBySize sorts sccs by increasing number of states.
func SortBySize(sccs []symbolic.Set) {
	slices.SortStableFunc(sccs, func(a, b symbolic.Set) int {
		return a.Cardinality().Cmp(b.Cardinality())
	})
}
