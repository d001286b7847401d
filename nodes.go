// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import (
	"math"
)

// node is a slot in the node table. A slot is free when low is -1, in which
// case high holds the index of the next free slot (0 if last).
type node struct {
	refcou int32  // Count the number of external references
	level  int32  // Order of the variable in the BDD; bit _MARKBIT is used for marking
	low    int    // Reference to the false branch, never complemented
	high   int    // Reference to the true branch
	next   int    // Next node in the same bucket of the unique table, 0 if last
	gen    uint32 // Incremented each time the slot is reclaimed
}

// nd returns the slot at index n. Indices are stable, so the pointer can be
// kept as long as no chunk is added.
func (b *BDD) nd(n int) *node {
	return &b.chunks[n>>_CHUNKBITS][n&_CHUNKMASK]
}

// level returns the level of the node pointed to by edge e. The constants are
// at level _MAXVAR, below every variable.
func (b *BDD) level(e int) int32 {
	return b.nd(e>>1).level & _MAXVAR
}

// cofactors returns the two branches of e with respect to the variable at
// level. We return (e, e) when e does not start with this variable. The
// complement flag of e is propagated to both branches.
func (b *BDD) cofactors(e int, level int32) (int, int) {
	nd := b.nd(e >> 1)
	if nd.level&_MAXVAR != level {
		return e, e
	}
	neg := e & 1
	return nd.low ^ neg, nd.high ^ neg
}

func (b *BDD) ismarked(n int) bool {
	return (b.nd(n).level & _MARKBIT) != 0
}

func (b *BDD) marknode(n int) {
	b.nd(n).level |= _MARKBIT
}

func (b *BDD) unmarknode(n int) {
	b.nd(n).level &= _MAXVAR
}

// ************************************************************

// extend makes slots [b.size, size) available, allocating new chunks when
// needed. Free slots are threaded in increasing order of index.
func (b *BDD) extend(size int) {
	for len(b.chunks)*_CHUNKSIZE < size {
		b.chunks = append(b.chunks, make([]node, _CHUNKSIZE))
	}
	for n := size - 1; n >= b.size; n-- {
		nd := b.nd(n)
		nd.low = -1
		nd.high = b.freepos
		b.freepos = n
	}
	b.freenum += size - b.size
	b.size = size
}

// alloc takes the first free slot. The caller must check that one exists.
func (b *BDD) alloc() int {
	res := b.freepos
	b.freepos = b.nd(res).high
	b.freenum--
	b.produced++
	return res
}

// noderesize grows the node table. We double its size unless we reach the
// limits set with Maxnodeincrease and Maxnodesize.
func (b *BDD) noderesize() error {
	oldsize := b.size
	if b.maxnodesize > 0 && oldsize >= b.maxnodesize {
		return ErrOutOfMemory
	}
	nodesize := oldsize << 1
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if b.maxnodesize > 0 && nodesize > b.maxnodesize {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		return ErrOutOfMemory
	}
	b.extend(nodesize)
	b.resizes++
	if b.log != nil {
		b.log.Infof("resize node table: %d -> %d nodes", oldsize, nodesize)
	}
	if b.cacheratio > 0 {
		b.cacheresize()
	}
	return nil
}

// live returns the number of nodes in use, without the terminal.
func (b *BDD) live() int {
	return b.size - 1 - b.freenum
}
