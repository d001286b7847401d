// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import (
	"time"
)

// gcstat stores status information about garbage collections. We use a stack
// (slice) of objects to record the sequence of GC during a computation.
type gcstat struct {
	reclaimed int           // Total number of nodes reclaimed
	gctime    time.Duration // Total time spent in garbage collection
	history   []gcpoint     // Snaphot of GC stats at each occurrence
}

type gcpoint struct {
	nodes     int           // Total number of allocated nodes in the nodetable
	freenodes int           // Number of free nodes in the nodetable after GC
	reclaimed int           // Number of nodes reclaimed
	purged    int           // Number of cache entries removed
	duration  time.Duration // Duration of the collection
}

// *************************************************************************

// AddRef increases the reference count on node n and returns n so that calls
// can be easily chained together. A call to AddRef can never raise an error:
// constants, sentinels, stale and foreign handles are left untouched.
//
// Reference counting is done on externaly referenced nodes only and the count
// for a specific node can and must be increased using this function to avoid
// loosing the node during garbage collection. A counter that reaches
// _MAXREFCOUNT is never decreased, so that the node is kept forever.
func (b *BDD) AddRef(n Edge) Edge {
	if n.e < 2 || b.checkptr(n) != nil {
		return n
	}
	nd := b.nd(n.e >> 1)
	if nd.refcou < _MAXREFCOUNT {
		nd.refcou++
	}
	return n
}

// DelRef decreases the reference count on a node and returns n so that calls
// can be easily chained together. A call to DelRef can never raise an error,
// even if the counter is already at zero.
//
// Like with AddRef, reference counting is done on externaly referenced nodes
// only and the count for a specific node can and must be decreased using this
// function to make it possible to reclaim the node during garbage collection.
func (b *BDD) DelRef(n Edge) Edge {
	if n.e < 2 || b.checkptr(n) != nil {
		return n
	}
	nd := b.nd(n.e >> 1)
	if nd.refcou <= 0 {
		return n
	}
	if nd.refcou < _MAXREFCOUNT {
		nd.refcou--
	}
	return n
}

// GC forces a garbage collection. Every node that is not reachable from an
// edge with a positive reference count is reclaimed, and handles on these
// nodes become invalid.
func (b *BDD) GC() {
	b.err = nil
	b.initref()
	b.gbc()
}

// *************************************************************************

// gbc is the garbage collector called for reclaiming memory, inside a call to
// makenode, when there are no free positions available. Allocated nodes that
// are not reclaimed do not move.
func (b *BDD) gbc() {
	start := time.Now()
	if b.log != nil {
		b.log.Debugf("starting GC: %d nodes, %d free", b.size, b.freenum)
	}
	before := b.live()
	// we mark the nodes in the refstack to avoid collecting them
	for _, r := range b.refstack {
		if r >= 2 {
			b.markrec(r >> 1)
		}
	}
	// we also protect nodes with a positive refcount
	for n := 1; n < b.size; n++ {
		if nd := b.nd(n); nd.low != -1 && nd.refcou > 0 {
			b.markrec(n)
		}
	}
	// we do a pass through the nodes list to void the unmarked nodes. After
	// finishing this pass, b.freepos points to the first free position, or it
	// is 0 if we found none.
	b.freepos = 0
	b.freenum = 0
	for n := b.size - 1; n > 0; n-- {
		nd := b.nd(n)
		if nd.low != -1 && nd.level&_MARKBIT != 0 {
			nd.level &= _MAXVAR
			continue
		}
		if nd.low != -1 {
			// the slot gets a new generation; handles on the old node
			// become stale
			nd.gen++
		}
		nd.low = -1
		nd.next = 0
		nd.high = b.freepos
		b.freepos = n
		b.freenum++
	}
	// we rebuild the unique table with only the nodes that are still alive,
	// which may shrink it, and we purge the caches
	b.rehash(b.live())
	purged := b.opPurged
	b.cachesweep()
	point := gcpoint{
		nodes:     b.size,
		freenodes: b.freenum,
		reclaimed: before - b.live(),
		purged:    b.opPurged - purged,
		duration:  time.Since(start),
	}
	b.gcstat.history = append(b.gcstat.history, point)
	b.reclaimed += point.reclaimed
	b.gctime += point.duration
	if b.log != nil {
		b.log.Infof("GC #%d: reclaimed %d nodes, purged %d cache entries, %d free in %s",
			len(b.gcstat.history), point.reclaimed, point.purged, point.freenodes, point.duration)
	}
}

// *************************************************************************
// RECURSIVE MARK / UNMARK

func (b *BDD) markrec(n int) {
	if n == 0 {
		return
	}
	nd := b.nd(n)
	if nd.level&_MARKBIT != 0 || nd.low == -1 {
		return
	}
	nd.level |= _MARKBIT
	b.markrec(nd.low >> 1)
	b.markrec(nd.high >> 1)
}

// markcount returns the number of successors of node n, including n, that
// were not already marked, and mark them.
func (b *BDD) markcount(n int) int {
	if n == 0 || b.ismarked(n) {
		return 0
	}
	b.marknode(n)
	nd := b.nd(n)
	return 1 + b.markcount(nd.low>>1) + b.markcount(nd.high>>1)
}

func (b *BDD) unmarkrec(n int) {
	if n == 0 || !b.ismarked(n) {
		return
	}
	b.unmarknode(n)
	nd := b.nd(n)
	b.unmarkrec(nd.low >> 1)
	b.unmarkrec(nd.high >> 1)
}

// *************************************************************************
// private functions to manipulate the refstack; used to prevent nodes that are
// currently being built (e.g. transient nodes built during an apply) to be
// reclaimed during GC.

func (b *BDD) initref() {
	b.refstack = b.refstack[:0]
}

func (b *BDD) pushref(n int) int {
	b.refstack = append(b.refstack, n)
	return n
}

func (b *BDD) popref(a int) {
	b.refstack = b.refstack[:len(b.refstack)-a]
}
