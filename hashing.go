// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

// Hash functions

func _TRIPLE(a, b, c, len int) int {
	return int(_PAIR64(uint64(c), _PAIR(a, b, len), uint64(len)))
}

// _PAIR is derived from the Cantor pairing function, which maps a pair of
// integers (a, b) to a unique integer. Once reduced modulo len it is only a
// hash, and distinct pairs can collide. The same holds for _PAIR64 and
// _TRIPLE.
func _PAIR(a, b, len int) uint64 {
	return (((uint64(a+b) * uint64(a+b+1)) / 2) + uint64(a)) % uint64(len)
}

func _PAIR64(a, b, len uint64) uint64 {
	return (((((a + b) % len) * ((a + b + 1) % len)) / 2) + a) % len
}

// ************************************************************

// The hash function for nodes is #(level, low, high)

func (b *BDD) nodehash(level int32, low, high int) int {
	return _TRIPLE(int(level), low, high, len(b.buckets))
}

// rehash rebuilds the unique table with (about) size buckets. Each bucket is
// the head of a chain of nodes threaded through their next field; 0 ends a
// chain since the terminal is never stored in the table.
func (b *BDD) rehash(size int) {
	if size < _CHUNKSIZE {
		size = _CHUNKSIZE
	}
	b.buckets = make([]int, primeGte(size))
	for n := 1; n < b.size; n++ {
		nd := b.nd(n)
		if nd.low == -1 {
			continue
		}
		hash := b.nodehash(nd.level&_MAXVAR, nd.low, nd.high)
		nd.next = b.buckets[hash]
		b.buckets[hash] = n
	}
}

// makenode returns the (unique) edge for the function "if x_level then high
// else low". We never create a node with a complemented low edge: the
// complement is moved to the edge returned to the caller instead. Both
// children must be protected from garbage collection by the caller, for
// instance using the refstack.
func (b *BDD) makenode(level int32, low, high int) int {
	b.uniqueAccess++
	if low < 0 || high < 0 {
		return bdderr
	}
	// check whether childs are equal
	if low == high {
		return low
	}
	neg := low & 1
	low ^= neg
	high ^= neg
	// otherwise try to find an existing node using the hash and next fields
	hash := b.nodehash(level, low, high)
	for res := b.buckets[hash]; res != 0; {
		nd := b.nd(res)
		if nd.level&_MAXVAR == level && nd.low == low && nd.high == high {
			b.uniqueHit++
			return res<<1 | neg
		}
		res = nd.next
		b.uniqueChain++
	}
	b.uniqueMiss++
	// If no existing node, we build one. If there is no available spot
	// (b.freepos == 0), we try garbage collection and, as a last resort,
	// resizing the BDD list.
	if b.freepos == 0 {
		b.gbc()
		if (b.freenum*100)/b.size <= b.minfreenodes {
			// failing to resize is not fatal as long as GC found some room
			if err := b.noderesize(); err != nil && b.freepos == 0 {
				return b.memerror(level)
			}
		}
		if b.freepos == 0 {
			return b.memerror(level)
		}
		hash = b.nodehash(level, low, high)
	}
	res := b.alloc()
	nd := b.nd(res)
	nd.refcou = 0
	nd.level = level
	nd.low = low
	nd.high = high
	nd.next = b.buckets[hash]
	b.buckets[hash] = res
	if b.live() > _UNIQUELOAD*len(b.buckets) {
		b.rehash(2 * len(b.buckets))
	}
	return res<<1 | neg
}
