// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in the BDD. We use only the first 21
// bits for encoding levels (so also the max number of variables). The bit just
// above is used for marking nodes during a traversal.
const _MAXVAR int32 = 0x1FFFFF

// _MARKBIT is the bit of the level field used to mark nodes.
const _MARKBIT int32 = 0x200000

// _MAXREFCOUNT is the maximal value of the reference counter (refcou). A node
// that reaches this value is never reclaimed.
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

// _DEFAULTCACHESIZE is the default number of entries in each operation cache.
const _DEFAULTCACHESIZE int = 10000

// Nodes are allocated by chunks of _CHUNKSIZE slots. Chunks are never moved
// once allocated, so the index of a node stays the same for its whole life.
const (
	_CHUNKBITS = 10
	_CHUNKSIZE = 1 << _CHUNKBITS
	_CHUNKMASK = _CHUNKSIZE - 1
)

// _UNIQUELOAD is the maximal average length of the chains in the unique table
// before we rehash it with more buckets.
const _UNIQUELOAD int = 2

// Internal edges are encoded as an int: the index of the node shifted left by
// one, with the lowest bit set for complemented edges. The terminal node is at
// index 0, so the constant false is 0 and true is its complement, 1. Negative
// values signal a failed computation.
const (
	bddzero int = 0
	bddone  int = 1
	bdderr  int = -1
	bddinv  int = -2
)
