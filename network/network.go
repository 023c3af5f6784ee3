package network

import (
	"fmt"
	"slices"
)

// VariableID is the index of a variable in a Network, in declaration order.
type VariableID int

// ParameterID is the index of a parameter (a zero-arity uninterpreted
// function) in a Network.
type ParameterID int

// Network is an asynchronous Boolean network: an ordered list of variables,
// each with an update function, and an optional list of parameters that may
// appear in update functions. A Network with parameters describes a family of
// networks, one for each valuation of the parameters (also called a color).
type Network struct {
	Name    string
	names   []string
	index   map[string]VariableID
	params  []string
	pindex  map[string]ParameterID
	updates []Expr
}

// New returns a network with the given variables and parameters. Every update
// function is initially the identity of its variable.
func New(variables []string, parameters ...string) (*Network, error) {
	n := &Network{
		index:  make(map[string]VariableID, len(variables)),
		pindex: make(map[string]ParameterID, len(parameters)),
	}
	for _, name := range variables {
		if err := n.checkname(name); err != nil {
			return nil, err
		}
		n.index[name] = VariableID(len(n.names))
		n.names = append(n.names, name)
		n.updates = append(n.updates, Var{ID: VariableID(len(n.updates))})
	}
	for _, name := range parameters {
		if err := n.checkname(name); err != nil {
			return nil, err
		}
		n.pindex[name] = ParameterID(len(n.params))
		n.params = append(n.params, name)
	}
	return n, nil
}

func (n *Network) checkname(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrSyntax)
	}
	if _, ok := n.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}
	if _, ok := n.pindex[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}
	return nil
}

// NumVars returns the number of variables.
func (n *Network) NumVars() int {
	return len(n.names)
}

// NumParameters returns the number of parameters.
func (n *Network) NumParameters() int {
	return len(n.params)
}

// Variables returns the variables of n in declaration order.
func (n *Network) Variables() []VariableID {
	res := make([]VariableID, len(n.names))
	for k := range res {
		res[k] = VariableID(k)
	}
	return res
}

// VariableName returns the name of variable v.
func (n *Network) VariableName(v VariableID) string {
	return n.names[v]
}

// ParameterName returns the name of parameter p.
func (n *Network) ParameterName(p ParameterID) string {
	return n.params[p]
}

// FindVariable returns the variable with the given name.
func (n *Network) FindVariable(name string) (VariableID, bool) {
	v, ok := n.index[name]
	return v, ok
}

// FindParameter returns the parameter with the given name.
func (n *Network) FindParameter(name string) (ParameterID, bool) {
	p, ok := n.pindex[name]
	return p, ok
}

// Update returns the update function of variable v.
func (n *Network) Update(v VariableID) Expr {
	return n.updates[v]
}

// SetUpdate sets the update function of variable v. Every variable and
// parameter in e must belong to n.
func (n *Network) SetUpdate(v VariableID, e Expr) error {
	if int(v) < 0 || int(v) >= len(n.names) {
		return fmt.Errorf("%w: variable %d", ErrUnknownVariable, v)
	}
	var err error
	Walk(e, func(e Expr) {
		switch x := e.(type) {
		case Var:
			if int(x.ID) < 0 || int(x.ID) >= len(n.names) {
				err = fmt.Errorf("%w: variable %d in update of %s", ErrUnknownVariable, x.ID, n.names[v])
			}
		case Param:
			if int(x.ID) < 0 || int(x.ID) >= len(n.params) {
				err = fmt.Errorf("%w: parameter %d in update of %s", ErrUnknownVariable, x.ID, n.names[v])
			}
		}
	})
	if err != nil {
		return err
	}
	n.updates[v] = e
	return nil
}

// Regulators returns the variables that appear in the update function of v,
// in increasing order.
func (n *Network) Regulators(v VariableID) []VariableID {
	return Support(n.updates[v])
}

// Format returns the textual form of e, using the names of n.
func (n *Network) Format(e Expr) string {
	return format(e, n.names, n.params, 0)
}

// Clone returns a deep copy of n. Expressions are immutable and are shared.
func (n *Network) Clone() *Network {
	c := &Network{
		Name:    n.Name,
		names:   slices.Clone(n.names),
		index:   make(map[string]VariableID, len(n.index)),
		params:  slices.Clone(n.params),
		pindex:  make(map[string]ParameterID, len(n.pindex)),
		updates: slices.Clone(n.updates),
	}
	for k, v := range n.index {
		c.index[k] = v
	}
	for k, v := range n.pindex {
		c.pindex[k] = v
	}
	return c
}
