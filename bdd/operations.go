// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"log"
	"math/big"
)

// Scanset returns the set of variables (levels) found when following the high
// branch of node n. This is the dual of function Makeset. The result may be nil
// if there is an error. The result follows the level order.
func (b *BDD) Scanset(n Node) []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		b.seterror("wrong operand in call to Scanset: %s", err)
		return nil
	}
	if *n < 2 {
		return []int{}
	}
	res := []int{}
	for i := *n; i > 1; i = b.high(i) {
		res = append(res, int(b.level(i)))
	}
	return res
}

// Makeset returns a node corresponding to the conjunction (the cube) of all the
// variable in varset, in their positive form. It is such that
// Scanset(Makeset(a)) == a, for a sorted list a. It returns nil and sets the
// error condition in b if one of the variables is outside the scope of the BDD
// (see documentation for function Ithvar).
func (b *BDD) Makeset(varset []int) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.error != nil {
		return nil
	}
	levels := make([]bool, b.varnum)
	for _, v := range varset {
		if v < 0 || int32(v) >= b.varnum {
			return b.seterror("unknown variable used (%d) in call to Makeset", v)
		}
		levels[v] = true
	}
	b.initref()
	res := 1
	for l := b.varnum - 1; l >= 0; l-- {
		if !levels[l] {
			continue
		}
		b.pushref(res)
		res = b.makenode(l, 0, res)
		b.popref(1)
		if res < 0 {
			return nil
		}
	}
	return b.retnode(res)
}

// Not returns the negation of the expression corresponding to node n. It
// negates a BDD by exchanging all references to the zero-terminal with
// references to the one-terminal and vice versa.
func (b *BDD) Not(n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return b.seterror("wrong operand in call to Not: %s", err)
	}
	b.initref()
	b.pushref(*n)
	res := b.not(*n)
	b.popref(1)
	return b.retnode(res)
}

func (b *BDD) not(n int) int {
	if n == 0 {
		return 1
	}
	if n == 1 {
		return 0
	}
	if n < 0 {
		return -1
	}
	// The hash for a not operation is simply n
	if res := b.matchnot(n); res >= 0 {
		return res
	}
	low := b.pushref(b.not(b.low(n)))
	high := b.pushref(b.not(b.high(n)))
	res := b.makenode(b.level(n), low, high)
	b.popref(2)
	return b.setnot(n, res)
}

// Apply performs all of the basic bdd operations with two operands, such as
// AND, OR etc. Left and right are the operand and opr is the requested
// operation and must be one of the following:
//
//	Identifier    Description            Truth table
//
//	OPand         logical and            [0,0,0,1]
//	OPxor         logical xor            [0,1,1,0]
//	OPor          logical or             [0,1,1,1]
//	OPnand        logical not-and        [1,1,1,0]
//	OPnor         logical not-or         [1,0,0,0]
//	OPimp         implication            [1,1,0,1]
//	OPbiimp       equivalence            [1,0,0,1]
//	OPdiff        set difference         [0,0,1,0]
//	OPless        less than              [0,1,0,0]
//	OPinvimp      reverse implication    [1,0,1,1]
func (b *BDD) Apply(left Node, right Node, op Operator) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(left); err != nil {
		return b.seterror("wrong left operand in call to Apply %s: %s", op, err)
	}
	if err := b.checkptr(right); err != nil {
		return b.seterror("wrong right operand in call to Apply %s: %s", op, err)
	}
	b.applycache.op = op
	b.initref()
	b.pushref(*left)
	b.pushref(*right)
	res := b.apply(*left, *right)
	b.popref(2)
	return b.retnode(res)
}

func (b *BDD) apply(left int, right int) int {
	// we check for errors
	if left < 0 || right < 0 {
		return -1
	}
	switch b.applycache.op {
	case OPand:
		if left == right {
			return left
		}
		if (left == 0) || (right == 0) {
			return 0
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return left
		}
	case OPor:
		if left == right {
			return left
		}
		if (left == 1) || (right == 1) {
			return 1
		}
		if left == 0 {
			return right
		}
		if right == 0 {
			return left
		}
	case OPxor:
		if left == right {
			return 0
		}
		if left == 0 {
			return right
		}
		if right == 0 {
			return left
		}
	case OPnand:
		if (left == 0) || (right == 0) {
			return 1
		}
	case OPnor:
		if (left == 1) || (right == 1) {
			return 0
		}
	case OPimp:
		if left == 0 {
			return 1
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return 1
		}
		if left == right {
			return 1
		}
	case OPbiimp:
		if left == right {
			return 1
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return left
		}
	case OPdiff:
		if (left == right) || (right == 1) || (left == 0) {
			return 0
		}
		if right == 0 {
			return left
		}
	case OPless:
		if (left == right) || (left == 1) || (right == 0) {
			return 0
		}
		if left == 0 {
			return right
		}
	case OPinvimp:
		if right == 0 {
			return 1
		}
		if right == 1 {
			return left
		}
		if left == 1 {
			return 1
		}
		if left == right {
			return 1
		}
	default:
		// unary operations, OPnot and OPsimplify, should not be used in apply
		b.seterror("unauthorized operation (%s) in apply", b.applycache.op)
		return -1
	}

	// we deal with the other cases where the two operands are constants
	if (left < 2) && (right < 2) {
		return b.applycache.op.eval(left, right)
	}
	if res := b.matchapply(left, right); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var res int
	switch {
	case leftlvl == rightlvl:
		low := b.pushref(b.apply(b.low(left), b.low(right)))
		high := b.pushref(b.apply(b.high(left), b.high(right)))
		res = b.makenode(leftlvl, low, high)
	case leftlvl < rightlvl:
		low := b.pushref(b.apply(b.low(left), right))
		high := b.pushref(b.apply(b.high(left), right))
		res = b.makenode(leftlvl, low, high)
	default:
		low := b.pushref(b.apply(left, b.low(right)))
		high := b.pushref(b.apply(left, b.high(right)))
		res = b.makenode(rightlvl, low, high)
	}
	b.popref(2)
	return b.setapply(left, right, res)
}

// Ite, short for if-then-else operator, computes the BDD for the expression [(f
// /\ g) \/ (not f /\ h)] more efficiently than doing the three operations
// separately.
func (b *BDD) Ite(f, g, h Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(f); err != nil {
		return b.seterror("wrong operand in call to Ite (f): %s", err)
	}
	if err := b.checkptr(g); err != nil {
		return b.seterror("wrong operand in call to Ite (g): %s", err)
	}
	if err := b.checkptr(h); err != nil {
		return b.seterror("wrong operand in call to Ite (h): %s", err)
	}
	b.initref()
	b.pushref(*f)
	b.pushref(*g)
	b.pushref(*h)
	res := b.ite(*f, *g, *h)
	b.popref(3)
	return b.retnode(res)
}

// ite_low returns p if p is strictly higher than q or r, otherwise it returns
// p.low. This is used in function ite to know which node to follow: we always
// follow the smallest(s) nodes.
func (b *BDD) ite_low(p, q, r int32, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.low(n)
}

func (b *BDD) ite_high(p, q, r int32, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.high(n)
}

// min3 returns the smallest value between p, q and r. This is used in function
// ite to compute the smallest level.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r { // p <= q && p <= r
			return p
		}
		return r // r < p <= q
	}
	if q <= r { // q < p && q <= r
		return q
	}
	return r // r < q < p
}

func (b *BDD) ite(f, g, h int) int {
	// we check for possible errors
	if f < 0 || g < 0 || h < 0 {
		if _DEBUG {
			log.Panicf("panic in ite(%d,%d,%d)\n", f, g, h)
		}
		return -1
	}
	switch {
	case f == 1:
		return g
	case f == 0:
		return h
	case g == h:
		return g
	case (g == 1) && (h == 0):
		return f
	case (g == 0) && (h == 1):
		return b.not(f)
	}
	if res := b.matchite(f, g, h); res >= 0 {
		return res
	}
	p := b.level(f)
	q := b.level(g)
	r := b.level(h)
	low := b.pushref(b.ite(b.ite_low(p, q, r, f), b.ite_low(q, p, r, g), b.ite_low(r, p, q, h)))
	high := b.pushref(b.ite(b.ite_high(p, q, r, f), b.ite_high(q, p, r, g), b.ite_high(r, p, q, h)))
	res := b.makenode(min3(p, q, r), low, high)
	b.popref(2)
	return b.setite(f, g, h, res)
}

// Exist returns the existential quantification of n for the variables in
// varset, where varset is a node built with a method such as Makeset. We return
// nil and set the error flag in b if there is an error.
func (b *BDD) Exist(n, varset Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return b.seterror("wrong node in call to Exist: %s", err)
	}
	if err := b.checkptr(varset); err != nil {
		return b.seterror("wrong varset in call to Exist: %s", err)
	}
	if *varset < 2 { // we have an empty set or a constant
		return n
	}
	if err := b.quantset2cache(*varset); err != nil {
		return nil
	}

	b.quantcache.id = (*varset << 3) | cacheid_EXIST
	b.applycache.op = OPor
	b.initref()
	b.pushref(*n)
	b.pushref(*varset)
	res := b.quant(*n)
	b.popref(2)
	return b.retnode(res)
}

func (b *BDD) quant(n int) int {
	if (n < 2) || (b.level(n) > b.quantlast) {
		return n
	}
	// the hash for a quantification operation is simply n
	if res := b.matchquant(n); res >= 0 {
		return res
	}
	low := b.pushref(b.quant(b.low(n)))
	high := b.pushref(b.quant(b.high(n)))
	var res int
	if b.quantset[b.level(n)] == b.quantsetID {
		res = b.apply(low, high)
	} else {
		res = b.makenode(b.level(n), low, high)
	}
	b.popref(2)
	return b.setquant(n, res)
}

// AppEx applies the binary operator op on the two operands left and right
// then performs an existential quantification over the variables in varset.
// This is done in a bottom up manner such that both the apply and
// quantification is done on the lower nodes before stepping up to the higher
// nodes. This makes AppEx much more efficient than an apply operation followed
// by a quantification. Note that, when op is a conjunction, this operation
// returns the relational product of two BDDs.
func (b *BDD) AppEx(left Node, right Node, op Operator, varset Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if op > OPnor {
		return b.seterror("operator %s not supported in call to AppEx", op)
	}
	if err := b.checkptr(varset); err != nil {
		return b.seterror("wrong varset in call to AppEx: %s", err)
	}
	if err := b.checkptr(left); err != nil {
		return b.seterror("wrong left operand in call to AppEx %s: %s", op, err)
	}
	if err := b.checkptr(right); err != nil {
		return b.seterror("wrong right operand in call to AppEx %s: %s", op, err)
	}
	b.initref()
	b.pushref(*left)
	b.pushref(*right)
	if *varset < 2 { // we have an empty set
		b.applycache.op = op
		res := b.apply(*left, *right)
		b.popref(2)
		return b.retnode(res)
	}
	if err := b.quantset2cache(*varset); err != nil {
		return nil
	}

	b.applycache.op = OPor
	b.appexcache.op = op
	b.appexcache.id = (*varset << 2) | int(op)
	b.quantcache.id = (b.appexcache.id << 3) | cacheid_APPEX
	b.pushref(*varset)
	res := b.appquant(*left, *right)
	b.popref(3)
	return b.retnode(res)
}

func (b *BDD) appquant(left, right int) int {
	// we check for errors
	if left < 0 || right < 0 {
		return -1
	}
	switch b.appexcache.op {
	case OPand:
		if left == 0 || right == 0 {
			return 0
		}
		if left == right {
			return b.quant(left)
		}
		if left == 1 {
			return b.quant(right)
		}
		if right == 1 {
			return b.quant(left)
		}
	case OPor:
		if left == 1 || right == 1 {
			return 1
		}
		if left == right {
			return b.quant(left)
		}
		if left == 0 {
			return b.quant(right)
		}
		if right == 0 {
			return b.quant(left)
		}
	case OPxor:
		if left == right {
			return 0
		}
		if left == 0 {
			return b.quant(right)
		}
		if right == 0 {
			return b.quant(left)
		}
	case OPnand:
		if left == 0 || right == 0 {
			return 1
		}
	case OPnor:
		if left == 1 || right == 1 {
			return 0
		}
	}

	// we deal with the other cases when the two operands are constants
	if (left < 2) && (right < 2) {
		return b.appexcache.op.eval(left, right)
	}

	// and the case where we have no more variables to quantify
	if (b.level(left) > b.quantlast) && (b.level(right) > b.quantlast) {
		oldop := b.applycache.op
		b.applycache.op = b.appexcache.op
		res := b.apply(left, right)
		b.applycache.op = oldop
		return res
	}

	// next we check if the operation is already in our cache
	if res := b.matchappex(left, right); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var low, high int
	var lvl int32
	switch {
	case leftlvl == rightlvl:
		low = b.pushref(b.appquant(b.low(left), b.low(right)))
		high = b.pushref(b.appquant(b.high(left), b.high(right)))
		lvl = leftlvl
	case leftlvl < rightlvl:
		low = b.pushref(b.appquant(b.low(left), right))
		high = b.pushref(b.appquant(b.high(left), right))
		lvl = leftlvl
	default:
		low = b.pushref(b.appquant(left, b.low(right)))
		high = b.pushref(b.appquant(left, b.high(right)))
		lvl = rightlvl
	}
	var res int
	if b.quantset[lvl] == b.quantsetID {
		res = b.apply(low, high)
	} else {
		res = b.makenode(lvl, low, high)
	}
	b.popref(2)
	return b.setappex(left, right, res)
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n. We return a result using arbitrary-precision
// arithmetic to avoid possible overflows. The result is zero (and we set the
// error flag of b) if there is an error.
func (b *BDD) Satcount(n Node) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := big.NewInt(0)
	if err := b.checkptr(n); err != nil {
		b.seterror("wrong operand in call to Satcount: %s", err)
		return res
	}
	// We compute 2^level with a bit shift 1 << level
	res.SetBit(res, int(b.level(*n)), 1)
	satc := make(map[int]*big.Int)
	return res.Mul(res, b.satcount(*n, satc))
}

func (b *BDD) satcount(n int, satc map[int]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	// we use satc to memoize the value of satcount for each nodes
	res, ok := satc[n]
	if ok {
		return res
	}
	level := b.level(n)
	low := b.low(n)
	high := b.high(n)

	res = big.NewInt(0)
	two := big.NewInt(0)
	two.SetBit(two, int(b.level(low)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(low, satc)))
	two = big.NewInt(0)
	two.SetBit(two, int(b.level(high)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(high, satc)))
	satc[n] = res
	return res
}

// Allsat Iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length varnum to f where
// each entry is either  0 if the variable is false, 1 if it is true, and -1 if
// it is a don't care. We stop and return an error if f returns an error at some
// point. The slice is reused between calls and must be copied if retained.
//
// Function f is called while the BDD is locked and must not call back into b.
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return fmt.Errorf("wrong node in call to Allsat: %w", err)
	}
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	// the function does not create new nodes, so we do not need to take care of
	// possible resizing
	return b.allsat(*n, prof, f)
}

func (b *BDD) allsat(n int, prof []int, f func([]int) error) error {
	if n == 1 {
		return f(prof)
	}
	if n == 0 {
		return nil
	}

	if low := b.low(n); low != 0 {
		prof[b.level(n)] = 0
		for v := b.level(low) - 1; v > b.level(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(low, prof, f); err != nil {
			return err
		}
	}

	if high := b.high(n); high != 0 {
		prof[b.level(n)] = 1
		for v := b.level(high) - 1; v > b.level(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies function f over all the nodes accessible from the nodes in
// the sequence n..., or all the active nodes if n is absent. The parameters to
// function f are the id, level, and id's of the low and high successors of each
// node. The two constant nodes (True and False) have always the id 1 and 0,
// respectively, and a level equal to Varnum.
//
// Nodes are visited in increasing order of id. We stop the computation and
// return an error if f returns an error at some point. Function f is called
// while the BDD is locked and must not call back into b.
func (b *BDD) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			return fmt.Errorf("wrong node in call to Allnodes: %w", err)
		}
	}
	if len(n) == 0 {
		return b.allnodes(f)
	}
	return b.allnodesfrom(f, n)
}

func (b *BDD) allnodesfrom(f func(id, level, low, high int) error, n []Node) error {
	for _, v := range n {
		b.markrec(*v)
	}
	if err := f(0, int(b.nodes[0].level), 0, 0); err != nil {
		b.unmarkall()
		return err
	}
	if err := f(1, int(b.nodes[1].level), 1, 1); err != nil {
		b.unmarkall()
		return err
	}
	for k := range b.nodes {
		if k > 1 && b.ismarked(k) {
			b.unmarknode(k)
			if err := f(k, int(b.nodes[k].level), b.nodes[k].low, b.nodes[k].high); err != nil {
				b.unmarkall()
				return err
			}
		}
	}
	return nil
}

func (b *BDD) allnodes(f func(id, level, low, high int) error) error {
	if err := f(0, int(b.nodes[0].level), 0, 0); err != nil {
		return err
	}
	if err := f(1, int(b.nodes[1].level), 1, 1); err != nil {
		return err
	}
	for k, v := range b.nodes {
		if k > 1 && v.low != -1 {
			if err := f(k, int(v.level), v.low, v.high); err != nil {
				return err
			}
		}
	}
	return nil
}
