package network

import (
	"fmt"
	"slices"
	"strings"
)

// Expr is a Boolean expression used as update function. It is one of Const,
// Var, Param, Not or Binary. Expressions are immutable.
type Expr interface {
	isExpr()
}

// Const is the constant true or false.
type Const struct{ Value bool }

// Var is a reference to a network variable.
type Var struct{ ID VariableID }

// Param is a reference to a network parameter.
type Param struct{ ID ParameterID }

// Not is the negation of X.
type Not struct{ X Expr }

// Op is a binary Boolean operator.
type Op int

// Binary operators, by increasing binding strength.
const (
	Iff Op = iota
	Imp
	Or
	Xor
	And
)

var opsymbols = [...]string{Iff: "<=>", Imp: "=>", Or: "|", Xor: "^", And: "&"}

func (op Op) String() string {
	return opsymbols[op]
}

// Binary is the application of Op to Left and Right.
type Binary struct {
	Op          Op
	Left, Right Expr
}

func (Const) isExpr()  {}
func (Var) isExpr()    {}
func (Param) isExpr()  {}
func (Not) isExpr()    {}
func (Binary) isExpr() {}

// True and False are the two constant expressions.
var (
	True  Expr = Const{true}
	False Expr = Const{false}
)

func apply(op Op, l, r bool) bool {
	switch op {
	case And:
		return l && r
	case Or:
		return l || r
	case Xor:
		return l != r
	case Imp:
		return !l || r
	case Iff:
		return l == r
	}
	panic(fmt.Sprintf("unknown operator %d", op))
}

// Eval returns the value of e for the given valuation of variables and
// parameters.
func Eval(e Expr, state []bool, params []bool) bool {
	switch x := e.(type) {
	case Const:
		return x.Value
	case Var:
		return state[x.ID]
	case Param:
		return params[x.ID]
	case Not:
		return !Eval(x.X, state, params)
	case Binary:
		return apply(x.Op, Eval(x.Left, state, params), Eval(x.Right, state, params))
	}
	panic(fmt.Sprintf("unknown expression %T", e))
}

// Walk calls f on e and all its sub-expressions, parents first.
func Walk(e Expr, f func(Expr)) {
	f(e)
	switch x := e.(type) {
	case Not:
		Walk(x.X, f)
	case Binary:
		Walk(x.Left, f)
		Walk(x.Right, f)
	}
}

// Support returns the variables occurring in e, sorted and without
// duplicates.
func Support(e Expr) []VariableID {
	var res []VariableID
	Walk(e, func(e Expr) {
		if v, ok := e.(Var); ok {
			res = append(res, v.ID)
		}
	})
	slices.Sort(res)
	return slices.Compact(res)
}

// Substitute replaces every occurrence of variable v by the constant value.
// The result is simplified.
func Substitute(e Expr, v VariableID, value bool) Expr {
	return Simplify(substitute(e, v, value))
}

func substitute(e Expr, v VariableID, value bool) Expr {
	switch x := e.(type) {
	case Var:
		if x.ID == v {
			return Const{value}
		}
	case Not:
		return Not{substitute(x.X, v, value)}
	case Binary:
		return Binary{x.Op, substitute(x.Left, v, value), substitute(x.Right, v, value)}
	}
	return e
}

// Simplify propagates constants in e. The result is either a Const or an
// expression without constants.
func Simplify(e Expr) Expr {
	switch x := e.(type) {
	case Not:
		inner := Simplify(x.X)
		switch y := inner.(type) {
		case Const:
			return Const{!y.Value}
		case Not:
			return y.X
		}
		return Not{inner}
	case Binary:
		l, r := Simplify(x.Left), Simplify(x.Right)
		lc, lok := l.(Const)
		rc, rok := r.(Const)
		switch {
		case lok && rok:
			return Const{apply(x.Op, lc.Value, rc.Value)}
		case lok:
			return simplifyConst(x.Op, lc.Value, r, true)
		case rok:
			return simplifyConst(x.Op, rc.Value, l, false)
		}
		return Binary{x.Op, l, r}
	}
	return e
}

// simplifyConst simplifies (c op e), or (e op c) when left is false.
func simplifyConst(op Op, c bool, e Expr, left bool) Expr {
	neg := func(e Expr) Expr {
		if n, ok := e.(Not); ok {
			return n.X
		}
		return Not{e}
	}
	switch op {
	case And:
		if c {
			return e
		}
		return False
	case Or:
		if c {
			return True
		}
		return e
	case Xor:
		if c {
			return neg(e)
		}
		return e
	case Iff:
		if c {
			return e
		}
		return neg(e)
	case Imp:
		switch {
		case left && c: // true => e
			return e
		case left: // false => e
			return True
		case c: // e => true
			return True
		default: // e => false
			return neg(e)
		}
	}
	panic(fmt.Sprintf("unknown operator %d", op))
}

func format(e Expr, names, params []string, prec int) string {
	switch x := e.(type) {
	case Const:
		if x.Value {
			return "true"
		}
		return "false"
	case Var:
		return names[x.ID]
	case Param:
		return params[x.ID]
	case Not:
		return "!" + format(x.X, names, params, int(And)+1)
	case Binary:
		var sb strings.Builder
		p := int(x.Op)
		if p < prec {
			sb.WriteString("(")
		}
		// operands of ^, => and <=> are always parenthesized, since these
		// operators do not associate the way & and | do
		inner := p + 1
		if x.Op != And && x.Op != Or {
			inner = int(And) + 1
		}
		sb.WriteString(format(x.Left, names, params, inner))
		sb.WriteString(" " + x.Op.String() + " ")
		sb.WriteString(format(x.Right, names, params, inner))
		if p < prec {
			sb.WriteString(")")
		}
		return sb.String()
	}
	panic(fmt.Sprintf("unknown expression %T", e))
}
