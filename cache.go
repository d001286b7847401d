// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package cedd

import (
	"math"
)

// ************************************************************
// cache is used for caching apply/exist etc. results. Caches are direct-mapped:
// a new entry simply overwrites the previous one with the same hash.
type cache struct {
	edges uint8 // key fields holding edges, checked when we sweep the cache
	table []cacheData
}

// cacheData is a unit of information stored in an operation cache. An entry
// is empty when a is -1.
type cacheData struct {
	res int
	a   int
	b   int
	c   int
	op  int32
}

// Flags used in cache.edges
const (
	_KEYA uint8 = 1 << iota
	_KEYB
	_KEYC
)

// cacheStat stores status information about cache usage
type cacheStat struct {
	uniqueAccess int // accesses to the unique node table
	uniqueChain  int // iterations through the cache chains in the unique node table
	uniqueHit    int // entries actually found in the the unique node table
	uniqueMiss   int // entries not found in the the unique node table
	opHit        int // entries found in the operator caches
	opMiss       int // entries not found in the operator caches
	opPurged     int // entries removed from the caches during garbage collection
}

// ************************************************************

// Basic functions shared by all caches

func (bc *cache) cacheinit(size int, edges uint8) {
	// we never check if the creation of the slice panic because of lack of memory
	bc.edges = edges
	bc.table = make([]cacheData, primeGte(size))
	bc.cachereset()
}

func (bc *cache) cachereset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// sweep removes the entries mentioning a node that is not alive anymore,
// either as a (edge) key or as a result. It returns the number of entries
// removed.
func (bc *cache) sweep(alive func(int) bool) int {
	purged := 0
	for k := range bc.table {
		entry := &bc.table[k]
		if entry.a == -1 {
			continue
		}
		if !alive(entry.res) ||
			(bc.edges&_KEYA != 0 && !alive(entry.a)) ||
			(bc.edges&_KEYB != 0 && !alive(entry.b)) ||
			(bc.edges&_KEYC != 0 && !alive(entry.c)) {
			entry.a = -1
			purged++
		}
	}
	return purged
}

// *************************************************************************
// Setup and shutdown

func (b *BDD) allcaches() []*cache {
	return []*cache{
		&b.applycache,
		&b.itecache,
		&b.restrictcache,
		&b.composecache,
		&b.quantcache,
		&b.appexcache,
		&b.replacecache,
	}
}

func (b *BDD) cacheinit(cachesize int) {
	if cachesize <= 0 {
		cachesize = b.size/5 + 1
	}
	b.applycache.cacheinit(cachesize, _KEYA|_KEYB)
	b.itecache.cacheinit(cachesize, _KEYA|_KEYB|_KEYC)
	b.restrictcache.cacheinit(cachesize, _KEYA)
	b.composecache.cacheinit(cachesize, _KEYA|_KEYB)
	b.quantcache.cacheinit(cachesize, _KEYA|_KEYB)
	b.appexcache.cacheinit(cachesize, _KEYA|_KEYB|_KEYC)
	b.replacecache.cacheinit(cachesize, _KEYA)
}

func (b *BDD) cachereset() {
	for _, bc := range b.allcaches() {
		bc.cachereset()
	}
}

// cacheresize is called after the node table grows. With a cache ratio of r we
// keep r entries for every 100 nodes, but never less than the initial size.
func (b *BDD) cacheresize() {
	size := (b.size / 100) * b.cacheratio
	if size < b.cachesize {
		size = b.cachesize
	}
	for _, bc := range b.allcaches() {
		bc.cacheinit(size, bc.edges)
	}
}

// cachesweep is called at the end of a garbage collection, once reclaimed
// nodes have been put back in the free list.
func (b *BDD) cachesweep() {
	alive := func(e int) bool {
		return e < 2 || b.nd(e>>1).low != -1
	}
	for _, bc := range b.allcaches() {
		b.opPurged += bc.sweep(alive)
	}
}

// ************************************************************

// match returns the result stored in bc for the key (a, x, c, op), or -1 if
// there is none.
func (b *BDD) match(bc *cache, a, x, c int, op int32) int {
	if b.nocache {
		b.opMiss++
		return -1
	}
	entry := &bc.table[_TRIPLE(a, x, c+int(op), len(bc.table))]
	if entry.a == a && entry.b == x && entry.c == c && entry.op == op {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

// store records res as the result for key (a, x, c, op) and returns it. We
// never store failed computations.
func (b *BDD) store(bc *cache, a, x, c int, op int32, res int) int {
	if res < 0 || b.nocache {
		return res
	}
	bc.table[_TRIPLE(a, x, c+int(op), len(bc.table))] = cacheData{
		res: res,
		a:   a,
		b:   x,
		c:   c,
		op:  op,
	}
	return res
}

// ************************************************************
//
// Quantification Cache
//

// quantset2cache takes a variable set, similar to the ones generated with
// Makeset, and set the variables in the quantification cache.
func (b *BDD) quantset2cache(varset int) error {
	b.quantsetID++
	if b.quantsetID == math.MaxInt32 {
		b.quantset = make([]int32, b.varnum)
		b.quantsetID = 1
	}
	b.quantlast = -1
	for e := varset; e != bddone; {
		if e == bddzero {
			return ErrNotVarset
		}
		level := b.level(e)
		low, high := b.cofactors(e, level)
		if low != bddzero {
			return ErrNotVarset
		}
		b.quantset[level] = b.quantsetID
		b.quantlast = level
		e = high
	}
	return nil
}
