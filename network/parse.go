package network

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// ParseExpr parses a Boolean expression using the names of variables and
// parameters of n. The syntax is the one of the bnet format: identifiers,
// true/false (or 1/0), !, &, |, ^ (xor), => and <=>, with parentheses.
// Operators ^, => and <=> bind tighter than & and |, so their operands
// should be parenthesized.
func (n *Network) ParseExpr(src string) (Expr, error) {
	tree, err := parser.Parse(normalize(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, src, err)
	}
	return n.convert(tree.Node)
}

// normalize rewrites the Boolean operators of src into the ones understood by
// the expression parser.
func normalize(src string) string {
	var sb strings.Builder
	for i := 0; i < len(src); i++ {
		rest := src[i:]
		switch {
		case strings.HasPrefix(rest, "<=>"):
			sb.WriteString(" == ")
			i += 2
		case strings.HasPrefix(rest, "=>"):
			// a => b is a <= b over Booleans
			sb.WriteString(" <= ")
			i++
		case strings.HasPrefix(rest, "&&"), strings.HasPrefix(rest, "||"):
			sb.WriteString(" " + rest[:2] + " ")
			i++
		case rest[0] == '&' || rest[0] == '|':
			sb.WriteString(" " + rest[:1] + rest[:1] + " ")
		case rest[0] == '^':
			sb.WriteString(" != ")
		default:
			sb.WriteByte(rest[0])
		}
	}
	return sb.String()
}

func (n *Network) convert(node ast.Node) (Expr, error) {
	switch x := node.(type) {
	case *ast.BoolNode:
		return Const{x.Value}, nil
	case *ast.IntegerNode:
		switch x.Value {
		case 0:
			return False, nil
		case 1:
			return True, nil
		}
		return nil, fmt.Errorf("%w: unexpected constant %d", ErrSyntax, x.Value)
	case *ast.IdentifierNode:
		if v, ok := n.index[x.Value]; ok {
			return Var{v}, nil
		}
		if p, ok := n.pindex[x.Value]; ok {
			return Param{p}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, x.Value)
	case *ast.UnaryNode:
		if x.Operator != "!" && x.Operator != "not" {
			return nil, fmt.Errorf("%w: unexpected operator %q", ErrSyntax, x.Operator)
		}
		inner, err := n.convert(x.Node)
		if err != nil {
			return nil, err
		}
		return Not{inner}, nil
	case *ast.BinaryNode:
		var op Op
		switch x.Operator {
		case "&&", "and":
			op = And
		case "||", "or":
			op = Or
		case "!=":
			op = Xor
		case "==":
			op = Iff
		case "<=":
			op = Imp
		default:
			return nil, fmt.Errorf("%w: unexpected operator %q", ErrSyntax, x.Operator)
		}
		left, err := n.convert(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := n.convert(x.Right)
		if err != nil {
			return nil, err
		}
		return Binary{op, left, right}, nil
	}
	return nil, fmt.Errorf("%w: unexpected expression %T", ErrSyntax, node)
}
