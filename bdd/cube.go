package bdd

// Witness returns one satisfying assignment of n, as a slice of length Varnum.
// We follow the low branch whenever it is not the constant false, so variables
// that do not appear on the chosen path are set to false. The result is nil if
// n is the constant false or if there is an error.
func (b *BDD) Witness(n Node) []bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		b.seterror("wrong operand in call to Witness: %s", err)
		return nil
	}
	return b.witness(*n)
}

func (b *BDD) witness(n int) []bool {
	if n == 0 {
		return nil
	}
	res := make([]bool, b.varnum)
	for n > 1 {
		if low := b.low(n); low != 0 {
			n = low
			continue
		}
		res[b.level(n)] = true
		n = b.high(n)
	}
	return res
}

// Fullsatone returns a node with exactly one satisfying assignment, over all
// the variables of b, that is included in n. The choice follows the one of
// Witness. It returns the constant false if n is false.
func (b *BDD) Fullsatone(n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return b.seterror("wrong operand in call to Fullsatone: %s", err)
	}
	if *n == 0 {
		return bddzero
	}
	b.initref()
	b.pushref(*n)
	res := b.cube(b.witness(*n))
	b.popref(1)
	return b.retnode(res)
}

// Cube returns the node with exactly one satisfying assignment, given by
// valuation. The length of valuation must be Varnum.
func (b *BDD) Cube(valuation []bool) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.error != nil {
		return nil
	}
	if len(valuation) != int(b.varnum) {
		return b.seterror("wrong valuation size (%d) in call to Cube, expected %d", len(valuation), b.varnum)
	}
	b.initref()
	return b.retnode(b.cube(valuation))
}

// cube builds the conjunction of literals bottom-up, so that each new node
// only depends on nodes already in the table.
func (b *BDD) cube(valuation []bool) int {
	res := 1
	for l := b.varnum - 1; l >= 0; l-- {
		b.pushref(res)
		if valuation[l] {
			res = b.makenode(l, 0, res)
		} else {
			res = b.makenode(l, res, 0)
		}
		b.popref(1)
		if res < 0 {
			return -1
		}
	}
	return res
}

// Nodecount returns the number of nodes reachable from the nodes in n, not
// counting the two constants.
func (b *BDD) Nodecount(n ...Node) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			b.seterror("wrong operand in call to Nodecount: %s", err)
			return 0
		}
	}
	for _, v := range n {
		b.markrec(*v)
	}
	count := 0
	for k := 2; k < len(b.nodes); k++ {
		if b.ismarked(k) {
			b.unmarknode(k)
			count++
		}
	}
	return count
}

// Tablesize returns the current number of slots in the node table. It is an
// upper bound for the id of every node.
func (b *BDD) Tablesize() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.nodes)
}
