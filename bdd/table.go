// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"log"
	"math"
	"runtime"
	"sync/atomic"
)

// nodetable stores the BDD nodes in a slice and uses the runtime hashmap as a
// unicity table. We use more space than a dedicated hash table, but the
// implementation is simpler and the Go map is already well tuned.
type nodetable struct {
	nodes        []node          // List of all the BDD nodes. Constants are always kept at index 0 and 1
	unique       map[nodekey]int // Unicity table, used to associate each triplet to a single node
	freenum      int             // Number of free nodes
	freepos      int             // First free node
	produced     int             // Total number of new nodes ever produced
	uniqueAccess int             // accesses to the unique node table
	uniqueHit    int             // entries actually found in the the unique node table
	uniqueMiss   int             // entries not found in the the unique node table
	gcstat                       // Information about garbage collections
}

type node struct {
	level  int32 // Order of the variable in the BDD
	low    int   // Reference to the false branch
	high   int   // Reference to the true branch
	refcou int32 // Count the number of external references
}

type nodekey struct {
	level     int32
	low, high int
}

// When a slot is unused in b.nodes, we have low set to -1 and high set to the
// next free position. The value of b.freepos gives the index of the lowest
// unused slot, except when freenum is 0, in which case it is also 0.

func (b *BDD) inittable(nodesize int) {
	b.nodes = make([]node, nodesize)
	for k := range b.nodes {
		b.nodes[k] = node{
			level:  0,
			low:    -1,
			high:   k + 1,
			refcou: 0,
		}
	}
	b.nodes[nodesize-1].high = 0
	b.unique = make(map[nodekey]int, nodesize)
	// bddzero and bddone are never added to the unique table.
	b.nodes[0] = node{level: b.varnum, low: 0, high: 0, refcou: _MAXREFCOUNT}
	b.nodes[1] = node{level: b.varnum, low: 1, high: 1, refcou: _MAXREFCOUNT}
	b.freepos = 2
	b.freenum = nodesize - 2
	b.gcstat.history = []gcpoint{}
}

func (b *BDD) ismarked(n int) bool {
	return (b.nodes[n].refcou & _MARK) != 0
}

func (b *BDD) marknode(n int) {
	b.nodes[n].refcou |= _MARK
}

func (b *BDD) unmarknode(n int) {
	b.nodes[n].refcou &^= _MARK
}

func (b *BDD) level(n int) int32 {
	return b.nodes[n].level
}

func (b *BDD) low(n int) int {
	return b.nodes[n].low
}

func (b *BDD) high(n int) int {
	return b.nodes[n].high
}

// retnode returns an external reference to node n. The reference count of n
// is decremented by a finalizer when the Node is reclaimed by the Go runtime.
func (b *BDD) retnode(n int) Node {
	if n < 0 || n >= len(b.nodes) {
		if _DEBUG {
			log.Panicf("b.retnode(%d) not valid\n", n)
		}
		return nil
	}
	if n == 0 {
		return bddzero
	}
	if n == 1 {
		return bddone
	}
	x := n
	if b.nodes[n].refcou&^_MARK < _MAXREFCOUNT {
		b.nodes[n].refcou++
		runtime.SetFinalizer(&x, b.release)
		if _DEBUG {
			atomic.AddUint64(&(b.setfinalizers), 1)
			if _LOGLEVEL > 2 {
				log.Printf("inc refcou %d\n", n)
			}
		}
	}
	return &x
}

// release is the finalizer of external references. Nodes whose count reached
// _MAXREFCOUNT stay in the table forever.
func (b *BDD) release(n *int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _DEBUG {
		atomic.AddUint64(&(b.gcstat.calledfinalizers), 1)
		if _LOGLEVEL > 2 {
			log.Printf("dec refcou %d\n", *n)
		}
	}
	if c := b.nodes[*n].refcou &^ _MARK; c > 0 && c < _MAXREFCOUNT {
		b.nodes[*n].refcou--
	}
}

// makenode returns the index of the node (level, low, high), creating it if
// needed. It returns -1 and sets the error status of b if there is no room
// left in the table.
func (b *BDD) makenode(level int32, low int, high int) int {
	if low < 0 || high < 0 {
		return -1
	}
	if _DEBUG {
		b.uniqueAccess++
	}
	// check whether children are equal, in which case we can skip the node
	if low == high {
		return low
	}
	// otherwise try to find an existing node using the unique table
	if res, ok := b.unique[nodekey{level, low, high}]; ok {
		if _DEBUG {
			b.uniqueHit++
		}
		return res
	}
	if _DEBUG {
		b.uniqueMiss++
	}
	// If no existing node, we build one. If there is no available spot
	// (b.freepos == 0), we try garbage collection and, as a last resort,
	// resizing the BDD list.
	if b.freepos == 0 {
		// low and high must survive the collection
		b.pushref(low)
		b.pushref(high)
		b.gbc()
		if (b.freenum*100)/len(b.nodes) <= b.minfreenodes {
			if err := b.noderesize(); err != nil && b.freepos == 0 {
				b.popref(2)
				b.seterror("%s (%d nodes)", err, len(b.nodes))
				return -1
			}
			b.cacheresize()
		} else {
			b.cachereset()
		}
		b.popref(2)
		if b.freepos == 0 {
			b.seterror("%s (%d nodes)", errMemory, len(b.nodes))
			return -1
		}
	}
	// We can now build the new node in the first available spot
	b.produced++
	return b.setnode(level, low, high)
}

func (b *BDD) setnode(level int32, low int, high int) int {
	b.freenum--
	res := b.freepos
	b.unique[nodekey{level, low, high}] = res
	b.freepos = b.nodes[res].high
	b.nodes[res] = node{level, low, high, 0}
	return res
}

func (b *BDD) noderesize() error {
	if _LOGLEVEL > 0 {
		log.Printf("start resize: %d\n", len(b.nodes))
	}
	oldsize := len(b.nodes)
	nodesize := len(b.nodes)
	if (oldsize >= b.maxnodesize) && (b.maxnodesize > 0) {
		return errMemory
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if (nodesize > b.maxnodesize) && (b.maxnodesize > 0) {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		return errMemory
	}

	tmp := b.nodes
	b.nodes = make([]node, nodesize)
	copy(b.nodes, tmp)

	for n := oldsize; n < nodesize; n++ {
		b.nodes[n].refcou = 0
		b.nodes[n].level = 0
		b.nodes[n].low = -1
		b.nodes[n].high = n + 1
	}
	b.nodes[nodesize-1].high = b.freepos
	b.freepos = oldsize
	b.freenum += (nodesize - oldsize)

	if _LOGLEVEL > 0 {
		log.Printf("end resize: %d\n", len(b.nodes))
	}
	return nil
}

// markrec marks all the nodes reachable from n. We use an explicit stack
// since BDD with many variables can be very deep.
func (b *BDD) markrec(n int) {
	stack := []int{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n < 2 || b.ismarked(n) || (b.nodes[n].low == -1) {
			continue
		}
		b.marknode(n)
		stack = append(stack, b.nodes[n].low, b.nodes[n].high)
	}
}

func (b *BDD) unmarkall() {
	for k, v := range b.nodes {
		if k < 2 || !b.ismarked(k) || (v.low == -1) {
			continue
		}
		b.unmarknode(k)
	}
}
