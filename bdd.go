// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import (
	"sync/atomic"
)

// BDD is a manager for Binary Decision Diagrams with complement edges. It
// stores all the nodes of the diagrams built with it, shares common
// subgraphs, and caches the results of operations.
//
// A BDD is not safe for concurrent use; each goroutine should use its own
// manager.
type BDD struct {
	id            uint32   // Identifier used to recognize our handles
	varnum        int32    // number of BDD variables
	chunks        [][]node // Node table, allocated by chunks of _CHUNKSIZE slots
	size          int      // Number of usable slots in the node table
	freenum       int      // Number of free nodes
	freepos       int      // First free node, 0 if none
	produced      int      // Total number of new nodes ever produced
	resizes       int      // Number of times the node table was extended
	buckets       []int    // Unique table; heads of the bucket chains
	refstack      []int    // Internal node reference stack
	quantset      []int32  // Current variable set for quant.
	quantsetID    int32    // Current id used in quantset
	quantlast     int32    // Current last variable to be quant.
	replaceid     int      // Last identifier given to a Replacer
	composeid     int      // Last identifier given to a call to ComposeMap
	nocache       bool     // Disable operation caches (used for testing)
	err           error    // Error status of the last operation
	configs                // Configuration parameters
	gcstat                 // Information about garbage collections
	cacheStat              // Information about the caches
	applycache    cache    // Cache for And and Xor results
	itecache      cache    // Cache for ITE results
	restrictcache cache    // Cache for Restrict results
	composecache  cache    // Cache for Compose results
	quantcache    cache    // Cache for exist/forall results
	appexcache    cache    // Cache for AppEx results
	replacecache  cache    // Cache for Replace results
}

var managers atomic.Uint32

// New returns a new BDD with varnum variables, numbered from 0 to varnum-1.
// The order of variables is fixed: variable i is tested before variable j when
// i < j. More variables can be added later with SetVarnum, or simply by
// calling Ithvar.
//
// The initial number of nodes is not critical since the table will be resized
// whenever there are too few nodes left after a garbage collection. But it does
// have some impact on the efficency of the operations. We return an error if
// varnum is negative or too large.
func New(varnum int, options ...Option) (*BDD, error) {
	if varnum < 0 || varnum > int(_MAXVAR) {
		return nil, ErrBadVarnum
	}
	b := &BDD{}
	b.id = managers.Add(1)
	b.configs = *makeconfigs(varnum)
	for _, f := range options {
		f(&b.configs)
	}
	if b.maxnodesize > 0 && b.nodesize > b.maxnodesize {
		b.nodesize = b.maxnodesize
	}
	if b.nodesize < 2 {
		b.nodesize = 2
	}
	// the terminal node is at index 0, below every variable
	b.chunks = [][]node{make([]node, _CHUNKSIZE)}
	b.chunks[0][0] = node{
		refcou: _MAXREFCOUNT,
		level:  _MAXVAR,
	}
	b.size = 1
	b.extend(b.nodesize)
	b.rehash(b.nodesize)
	b.cacheinit(b.cachesize)
	b.quantset = make([]int32, 0)
	b.gcstat.history = make([]gcpoint, 0)
	b.SetVarnum(varnum)
	if b.log != nil {
		b.log.Infof("new BDD #%d: %d variables, %d nodes, cache size %d", b.id, varnum, b.size, len(b.applycache.table))
	}
	return b, nil
}

// ************************************************************

// SetVarnum sets the number of BDD variables. It may be called more than one
// time, but only to increase the number of variables; we return an error if
// num is less than the current number of variables. Existing edges remain
// valid.
func (b *BDD) SetVarnum(num int) error {
	b.err = nil
	if num < int(b.varnum) || num > int(_MAXVAR) {
		b.seterror(ErrBadVarnum, "number of variables (%d) in call to SetVarnum", num)
		return b.err
	}
	if num == int(b.varnum) {
		return nil
	}
	tmp := b.quantset
	b.quantset = make([]int32, num)
	copy(b.quantset, tmp)
	b.varnum = int32(num)
	return nil
}

// ExtVarnum extends the current number of allocated BDD variables with num
// extra variables.
func (b *BDD) ExtVarnum(num int) error {
	if num < 0 {
		b.seterror(ErrBadVarnum, "negative value (%d) in call to ExtVarnum", num)
		return b.err
	}
	return b.SetVarnum(int(b.varnum) + num)
}

// Varnum returns the number of defined variables.
func (b *BDD) Varnum() int {
	return int(b.varnum)
}

// Ithvar returns a BDD representing the i'th variable on success, otherwise we
// set the error status in the BDD and returns Invalid or Error. If i is not
// less than Varnum, the number of variables is first extended to i+1.
//
// Variables are not protected from garbage collection; like any other edge,
// the result must be referenced with AddRef if it has to be kept across calls.
func (b *BDD) Ithvar(i int) Edge {
	b.err = nil
	b.initref()
	if (i < 0) || (i >= int(_MAXVAR)) {
		return b.seterror(ErrUnknownVariable, "variable %d in call to Ithvar", i)
	}
	if i >= int(b.varnum) {
		if err := b.SetVarnum(i + 1); err != nil {
			return b.seterror(err, "in call to Ithvar")
		}
	}
	return b.retnode(b.makenode(int32(i), bddzero, bddone))
}

// NIthvar returns a bdd representing the negation of the i'th variable on
// success. See Ithvar for further info.
func (b *BDD) NIthvar(i int) Edge {
	return b.Ithvar(i).Not()
}

// True returns the constant true BDD
func (b *BDD) True() Edge {
	return One
}

// False returns the constant false BDD
func (b *BDD) False() Edge {
	return Zero
}

// From returns a (constant) Edge from a boolean value.
func (b *BDD) From(v bool) Edge {
	if v {
		return One
	}
	return Zero
}

// ************************************************************

// Label returns the variable (index) corresponding to the root node of n. We
// set the BDD to its error state and return -1 if n is a constant or invalid.
func (b *BDD) Label(n Edge) int {
	b.err = nil
	if err := b.checkptr(n); err != nil {
		b.seterror(err, "in call to Label(%s)", n)
		return -1
	}
	if n.e < 2 {
		b.seterror(ErrInvalidHandle, "label of constant node")
		return -1
	}
	return int(b.level(n.e))
}

// Low returns the false branch of a BDD, taking into account the complement
// flag of n. The low branch of a constant is itself.
func (b *BDD) Low(n Edge) Edge {
	b.err = nil
	if err := b.checkptr(n); err != nil {
		return b.seterror(err, "in call to Low(%s)", n)
	}
	if n.e < 2 {
		return n
	}
	low, _ := b.cofactors(n.e, b.level(n.e))
	return b.retnode(low)
}

// High returns the true branch of a BDD, taking into account the complement
// flag of n. The high branch of a constant is itself.
func (b *BDD) High(n Edge) Edge {
	b.err = nil
	if err := b.checkptr(n); err != nil {
		return b.seterror(err, "in call to High(%s)", n)
	}
	if n.e < 2 {
		return n
	}
	_, high := b.cofactors(n.e, b.level(n.e))
	return b.retnode(high)
}

// Equal tests equivalence between nodes. Since the representation is
// canonical, this is a simple comparison of edges.
func (b *BDD) Equal(n1, n2 Edge) bool {
	return n1 == n2
}
