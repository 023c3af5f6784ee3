// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"log"
	"sync"
)

// Node is a reference to an element of a BDD. It represents the atomic unit of
// interactions and computations within a BDD.
type Node *int

// inode returns a Node for known nodes, such as constants and variables, that
// do not need to increase their reference count.
func inode(n int) Node {
	x := n
	return &x
}

var bddone Node = inode(1)

var bddzero Node = inode(0)

// BDD is a shared Binary Decision Diagram over a fixed number of variables. The
// node table is protected by a mutex, so that nodes can be computed and
// released from different goroutines.
type BDD struct {
	mu         sync.Mutex
	varnum     int32    // number of BDD variables
	varset     [][2]int // Nodes for the positive and negative literal of each variable
	refstack   []int    // Internal node reference stack
	error               // Error status to help chain operations
	nodetable           // Node table and unique table
	quantset   []int32  // Current variable set for quantification
	quantsetID int32    // Current id used in quantset
	quantlast  int32    // Current last variable to be quantified
	applycache          // Cache for apply results
	itecache            // Cache for ITE results
	quantcache          // Cache for exist results
	appexcache          // Cache for AppEx results
	cacheStat           // Information about the caches
	configs             // Configurable parameters
}

// New returns a new BDD with varnum variables. The size of the node table and
// caches can be tuned with options such as Nodesize, Cachesize or Cacheratio.
// The table grows when needed, up to Maxnodesize if this option is set.
func New(varnum int, options ...Option) (*BDD, error) {
	b := &BDD{}
	if (varnum < 1) || (varnum > int(_MAXVAR)) {
		b.seterror("bad number of variable (%d)", varnum)
		return nil, b.error
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	b.configs = *config
	b.varnum = int32(varnum)
	if _LOGLEVEL > 0 {
		log.Printf("set varnum to %d\n", b.varnum)
	}
	b.varset = make([][2]int, varnum)
	b.refstack = make([]int, 0, 2*varnum+4)
	b.quantset = make([]int32, varnum)
	b.initref()
	b.inittable(config.nodesize)
	b.cacheinit(config.cachesize)
	for k := int32(0); k < b.varnum; k++ {
		v0 := b.makenode(k, 0, 1)
		if v0 < 0 {
			b.seterror("cannot allocate new variable %d", k)
			return nil, b.error
		}
		b.nodes[v0].refcou = _MAXREFCOUNT
		b.pushref(v0)
		v1 := b.makenode(k, 1, 0)
		if v1 < 0 {
			b.seterror("cannot allocate new variable %d", k)
			return nil, b.error
		}
		b.nodes[v1].refcou = _MAXREFCOUNT
		b.popref(1)
		b.varset[k] = [2]int{v0, v1}
	}
	return b, nil
}

// Varnum returns the number of defined variables.
func (b *BDD) Varnum() int {
	return int(b.varnum)
}

// True returns the Node for the constant true.
func (b *BDD) True() Node {
	return bddone
}

// False returns the Node for the constant false.
func (b *BDD) False() Node {
	return bddzero
}

// From returns a (constant) Node from a boolean value.
func (b *BDD) From(v bool) Node {
	if v {
		return bddone
	}
	return bddzero
}

// Ithvar returns a BDD representing the i'th variable on success, otherwise we
// set the error status in the BDD and returns nil. The requested variable must
// be in the range [0..Varnum).
func (b *BDD) Ithvar(i int) Node {
	if (i < 0) || (int32(i) >= b.varnum) {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.seterror("unknown variable used (%d) in call to Ithvar", i)
	}
	// we do not need to reference count variables
	return inode(b.varset[i][0])
}

// NIthvar returns a bdd representing the negation of the i'th variable on
// success. See Ithvar for further info.
func (b *BDD) NIthvar(i int) Node {
	if (i < 0) || (int32(i) >= b.varnum) {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.seterror("unknown variable used (%d) in call to NIthvar", i)
	}
	return inode(b.varset[i][1])
}

// Label returns the variable (level) of node n. We return Varnum for the two
// constant nodes and -1 if n is not a valid node.
func (b *BDD) Label(n Node) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		b.seterror("illegal node in call to Label: %s", err)
		return -1
	}
	return int(b.nodes[*n].level)
}

// Low returns the false branch of a BDD or nil if there is an error.
func (b *BDD) Low(n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return b.seterror("illegal node in call to Low: %s", err)
	}
	return b.retnode(b.nodes[*n].low)
}

// High returns the true branch of a BDD or nil if there is an error.
func (b *BDD) High(n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return b.seterror("illegal node in call to High: %s", err)
	}
	return b.retnode(b.nodes[*n].high)
}

// Equal tests equivalence between nodes.
func (b *BDD) Equal(n1, n2 Node) bool {
	if n1 == n2 {
		return true
	}
	if n1 == nil || n2 == nil {
		return false
	}
	return *n1 == *n2
}

// ************************************************************

// And returns the logical 'and' of a sequence of nodes.
func (b *BDD) And(n ...Node) Node {
	return b.fold(OPand, bddone, n)
}

// Or returns the logical 'or' of a sequence of nodes.
func (b *BDD) Or(n ...Node) Node {
	return b.fold(OPor, bddzero, n)
}

// Imp returns the logical 'implication' between two BDDs.
func (b *BDD) Imp(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPimp)
}

// Equiv returns the logical 'bi-implication' between two BDDs.
func (b *BDD) Equiv(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPbiimp)
}

// AndExist returns the "relational composition" of two nodes with respect to
// varset, meaning the result of (Exists varset . n1 & n2).
func (b *BDD) AndExist(varset, n1, n2 Node) Node {
	return b.AppEx(n1, n2, OPand, varset)
}

func (b *BDD) fold(op Operator, unit Node, n []Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := *unit
	for k, v := range n {
		if err := b.checkptr(v); err != nil {
			return b.seterror("wrong operand (%d) in call to %s: %s", k, op, err)
		}
		b.initref()
		b.pushref(res)
		b.pushref(*v)
		b.applycache.op = op
		res = b.apply(res, *v)
		if res < 0 {
			return nil
		}
	}
	b.initref()
	return b.retnode(res)
}
