// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"math"
)

// ************************************************************
// cache is used for caching apply/exist etc. results
type cache struct {
	table []cacheData
}

// cacheStat stores status information about cache usage
type cacheStat struct {
	opHit  int // entries found in the operator caches
	opMiss int // entries not found in the operator caches
}

// cacheData is a unit of information stored in the Apply and ITE cache
type cacheData struct {
	res int
	a   int
	b   int
	c   int
}

// ************************************************************

// Different kind of caches used in the bdd

type applycache struct {
	cache          // Cache for apply results
	op    Operator // Current operation during an apply
}

type itecache struct {
	cache // Cache for ITE results
}

type quantcache struct {
	cache     // Cache for exist results
	id    int // Current cache id for quantifications
}

// appexcache are a mix of quant and apply caches
type appexcache struct {
	cache          // Cache for appex results
	id    int      // Current cache id for quantifications
	op    Operator // Current operator for appex
}

// ************************************************************

// Hash value modifiers for quantification
const cacheid_EXIST int = 0x0
const cacheid_APPEX int = 0x3

// ************************************************************

// Basic functions shared by all caches

func (bc *cache) cacheinit(size int) {
	// we never check if the creation of the slice panic because of lack of memory
	size = bdd_prime_gte(size)
	bc.table = make([]cacheData, size)
	bc.cachereset()
}

func (bc *cache) cachereset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// *************************************************************************
// Setup and shutdown

func (b *BDD) cacheinit(cachesize int) {
	if cachesize <= 0 {
		cachesize = len(b.nodes)/5 + 1
	}
	cachesize = bdd_prime_gte(cachesize)
	b.applycache.cacheinit(cachesize)
	b.itecache.cacheinit(cachesize)
	b.quantcache.cacheinit(cachesize)
	b.appexcache.cacheinit(cachesize)
}

func (b *BDD) cachereset() {
	b.applycache.cachereset()
	b.itecache.cachereset()
	b.quantcache.cachereset()
	b.appexcache.cachereset()
}

// cacheresize is called after a resize of the node table. Caches only grow
// when a cache ratio has been set; in all cases their content is invalidated.
func (b *BDD) cacheresize() {
	if b.configs.cacheratio <= 0 {
		b.cachereset()
		return
	}
	size := (len(b.nodes) * b.configs.cacheratio) / 100
	if size <= len(b.applycache.table) {
		b.cachereset()
		return
	}
	b.applycache.cacheinit(size)
	b.itecache.cacheinit(size)
	b.quantcache.cacheinit(size)
	b.appexcache.cacheinit(size)
}

// ************************************************************
//
// Quantification Cache
//

// quantset2cache takes a variable list, similar to the ones generated with
// Makeset, and set the variables in the quantification cache.
func (b *BDD) quantset2cache(n int) error {
	if n < 2 {
		b.seterror("illegal variable (%d) in varset to cache", n)
		return b.error
	}
	b.quantsetID++
	if b.quantsetID == math.MaxInt32 {
		b.quantset = make([]int32, b.varnum)
		b.quantsetID = 1
	}
	for i := n; i > 1; i = b.nodes[i].high {
		b.quantset[b.nodes[i].level] = b.quantsetID
		b.quantlast = b.nodes[i].level
	}
	return nil
}

// ************************************************************

// String prints information about the cache performance.
func (c cacheStat) String() string {
	res := fmt.Sprintf("Operator Hits:  %d\n", c.opHit)
	res += fmt.Sprintf("Operator Miss:  %d", c.opMiss)
	return res
}
