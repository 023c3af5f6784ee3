package network

// InlineConstants returns a copy of n where every variable whose update
// function simplifies to a constant is removed, and its value substituted in
// the remaining update functions. This is repeated until no update function is
// constant, so constants propagate along chains of regulations. Parameters are
// kept.
func (n *Network) InlineConstants() *Network {
	res := n.Clone()
	for {
		removed := false
		for v, e := range res.updates {
			if c, ok := Simplify(e).(Const); ok {
				res = res.remove(VariableID(v), c.Value)
				removed = true
				break
			}
		}
		if !removed {
			return res
		}
	}
}

// remove deletes variable v, with the given constant value, from n.
func (n *Network) remove(v VariableID, value bool) *Network {
	res := &Network{
		Name:   n.Name,
		index:  make(map[string]VariableID, len(n.names)-1),
		params: n.params,
		pindex: n.pindex,
	}
	for k, name := range n.names {
		if VariableID(k) == v {
			continue
		}
		res.index[name] = VariableID(len(res.names))
		res.names = append(res.names, name)
		res.updates = append(res.updates, shift(Substitute(n.updates[k], v, value), v))
	}
	return res
}

// shift renumbers the variables of e after the removal of variable v.
func shift(e Expr, v VariableID) Expr {
	switch x := e.(type) {
	case Var:
		if x.ID > v {
			return Var{x.ID - 1}
		}
	case Not:
		return Not{shift(x.X, v)}
	case Binary:
		return Binary{x.Op, shift(x.Left, v), shift(x.Right, v)}
	}
	return e
}
