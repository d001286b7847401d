// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import (
	"math/big"

	"github.com/pkg/errors"
)

// satlevel returns the level of e, where constants are just below the last
// variable.
func (b *BDD) satlevel(e int) int {
	if e < 2 {
		return int(b.varnum)
	}
	return int(b.level(e))
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n, over all the Varnum variables of b. We return a result
// using arbitrary-precision arithmetic to avoid possible overflows. The result
// is zero (and we set the error flag of b) if there is an error.
func (b *BDD) Satcount(n Edge) *big.Int {
	b.err = nil
	res := big.NewInt(0)
	if err := b.checkptr(n); err != nil {
		b.seterror(err, "wrong operand in call to Satcount (%s)", n)
		return res
	}
	// We compute 2^level with a bit shift 1 << level
	res.SetBit(res, b.satlevel(n.e), 1)
	satc := make(map[int]*big.Int)
	return res.Mul(res, b.satcount(n.e, satc))
}

// SatcountUint64 is like Satcount but returns an error of class OverflowError
// if the result does not fit in 64 bits.
func (b *BDD) SatcountUint64(n Edge) (uint64, error) {
	res := b.Satcount(n)
	if b.err != nil {
		return 0, b.err
	}
	if !res.IsUint64() {
		b.err = errors.Wrapf(ErrOverflow, "%s assignments", res)
		return 0, b.err
	}
	return res.Uint64(), nil
}

// satcount returns the number of assignments for the variables from the level
// of e to the last one that satisfy e. The memo table is indexed by regular
// edges; the count for a complemented edge is deduced from its regular one.
func (b *BDD) satcount(e int, satc map[int]*big.Int) *big.Int {
	if e < 2 {
		return big.NewInt(int64(e))
	}
	n := e &^ 1
	res, ok := satc[n]
	if !ok {
		level := b.satlevel(n)
		nd := b.nd(n >> 1)
		res = big.NewInt(0)
		for _, child := range [2]int{nd.low, nd.high} {
			two := big.NewInt(0)
			two.SetBit(two, b.satlevel(child)-level-1, 1)
			res.Add(res, two.Mul(two, b.satcount(child, satc)))
		}
		satc[n] = res
	}
	if e&1 == 0 {
		return res
	}
	all := big.NewInt(0)
	all.SetBit(all, int(b.varnum)-b.satlevel(n), 1)
	return all.Sub(all, res)
}

// ************************************************************

// Nodecount returns the number of distinct (non-terminal) nodes reachable from
// the edges in roots. Shared nodes are counted once, and an edge and its
// negation share the same nodes. The result is 0 if there is an error.
func (b *BDD) Nodecount(roots ...Edge) uint64 {
	b.err = nil
	for _, n := range roots {
		if err := b.checkptr(n); err != nil {
			b.seterror(err, "wrong operand in call to Nodecount (%s)", n)
			return 0
		}
	}
	count := 0
	for _, n := range roots {
		if n.e >= 2 {
			count += b.markcount(n.e >> 1)
		}
	}
	for _, n := range roots {
		if n.e >= 2 {
			b.unmarkrec(n.e >> 1)
		}
	}
	return uint64(count)
}

// ************************************************************

// Allsat Iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length varnum to f where
// each entry is either  0 if the variable is false, 1 if it is true, and -1 if
// it is a don't care. We stop and return an error if f returns an error at some
// point.
//
// The following is an example of a callback handler that counts the number of
// possible assignments (such that we do not count don't care twice):
//
//	acc := new(int)
//	b.Allsat(n, func(varset []int) error {
//		*acc++
//		return nil
//	})
func (b *BDD) Allsat(n Edge, f func([]int) error) error {
	b.err = nil
	if err := b.checkptr(n); err != nil {
		b.seterror(err, "wrong node in call to Allsat (%s)", n)
		return b.err
	}
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	// the function does not create new nodes, so we do not need to take care of
	// possible resizing
	return b.allsat(n.e, prof, f)
}

func (b *BDD) allsat(e int, prof []int, f func([]int) error) error {
	if e == bddone {
		return f(prof)
	}
	if e == bddzero {
		return nil
	}
	level := b.satlevel(e)
	low, high := b.cofactors(e, int32(level))
	for val, child := range [2]int{low, high} {
		if child == bddzero {
			continue
		}
		prof[level] = val
		for v := b.satlevel(child) - 1; v > level; v-- {
			prof[v] = -1
		}
		if err := b.allsat(child, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies function f over all the nodes accessible from the edges in
// the sequence n..., or all the active nodes if n is absent. The parameters to
// function f are the id, level, and the low and high successors of each node.
// Successors are given as edges: the id of the node shifted left by one, with
// the lowest bit set if the edge is complemented. The terminal node has id 0,
// so that False is 0 and True is 1. Low edges are never complemented.
//
// The order in which nodes are visited is not specified. The behavior is very
// similar to the one of Allsat. In particular, we stop the computation and
// return an error if f returns an error at some point.
func (b *BDD) Allnodes(f func(id, level, low, high int) error, n ...Edge) error {
	b.err = nil
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			b.seterror(err, "wrong node in call to Allnodes (%s)", v)
			return b.err
		}
	}
	// the function does not create new nodes, so we do not need to take care of
	// possible resizing.
	if len(n) == 0 {
		for k := 1; k < b.size; k++ {
			if nd := b.nd(k); nd.low != -1 {
				if err := f(k, int(nd.level&_MAXVAR), nd.low, nd.high); err != nil {
					return err
				}
			}
		}
		return nil
	}
	var err error
	for _, v := range n {
		if err = b.allnodesrec(f, v.e>>1); err != nil {
			break
		}
	}
	for _, v := range n {
		b.unmarkrec(v.e >> 1)
	}
	return err
}

func (b *BDD) allnodesrec(f func(id, level, low, high int) error, n int) error {
	if n == 0 || b.ismarked(n) {
		return nil
	}
	b.marknode(n)
	nd := b.nd(n)
	if err := f(n, int(nd.level&_MAXVAR), nd.low, nd.high); err != nil {
		return err
	}
	if err := b.allnodesrec(f, nd.low>>1); err != nil {
		return err
	}
	return b.allnodesrec(f, nd.high>>1)
}

// ************************************************************

// Eval returns the value of n for the assignment of variables given in values,
// where values[i] is the value of the variable at level i. Missing values are
// taken to be false.
func (b *BDD) Eval(n Edge, values []bool) (bool, error) {
	b.err = nil
	if err := b.checkptr(n); err != nil {
		b.seterror(err, "wrong node in call to Eval (%s)", n)
		return false, b.err
	}
	e := n.e
	for e >= 2 {
		level := b.level(e)
		low, high := b.cofactors(e, level)
		if int(level) < len(values) && values[level] {
			e = high
		} else {
			e = low
		}
	}
	return e == bddone, nil
}

// Support returns the cube of all the variables that n depends on. The result
// can be used as a variable set, for instance in Exist.
func (b *BDD) Support(n Edge) Edge {
	b.err = nil
	if err := b.checkptr(n); err != nil {
		return b.seterror(err, "wrong operand in call to Support (%s)", n)
	}
	levels := make([]bool, b.varnum)
	b.supportrec(n.e>>1, levels)
	if n.e >= 2 {
		b.unmarkrec(n.e >> 1)
	}
	varset := []int{}
	for k, v := range levels {
		if v {
			varset = append(varset, k)
		}
	}
	return b.Makeset(varset)
}

func (b *BDD) supportrec(n int, levels []bool) {
	if n == 0 || b.ismarked(n) {
		return
	}
	b.marknode(n)
	nd := b.nd(n)
	levels[nd.level&_MAXVAR] = true
	b.supportrec(nd.low>>1, levels)
	b.supportrec(nd.high>>1, levels)
}

// ************************************************************

// Onepath returns a cube that implies n, made of the literals found on one of
// the paths from the root of n to True. The result is False if n is False.
func (b *BDD) Onepath(n Edge) Edge {
	b.begin()
	if err := b.checkptr(n); err != nil {
		return b.seterror(err, "wrong operand in call to Onepath (%s)", n)
	}
	if n.e == bddzero {
		return Zero
	}
	lits := []cubelit{}
	for e := n.e; e >= 2; {
		level := b.level(e)
		low, high := b.cofactors(e, level)
		if low != bddzero {
			lits = append(lits, cubelit{level, 0})
			e = low
		} else {
			lits = append(lits, cubelit{level, 1})
			e = high
		}
	}
	return b.retnode(b.cube(lits))
}

// ShortestOnepath is like Onepath but returns a cube with the smallest number
// of literals.
func (b *BDD) ShortestOnepath(n Edge) Edge {
	b.begin()
	if err := b.checkptr(n); err != nil {
		return b.seterror(err, "wrong operand in call to ShortestOnepath (%s)", n)
	}
	if n.e == bddzero {
		return Zero
	}
	memo := make(map[int]int)
	b.pathlen(n.e, memo)
	lits := []cubelit{}
	for e := n.e; e >= 2; {
		level := b.level(e)
		low, high := b.cofactors(e, level)
		if l := b.pathlen(low, memo); l >= 0 && l == memo[e]-1 {
			lits = append(lits, cubelit{level, 0})
			e = low
		} else {
			lits = append(lits, cubelit{level, 1})
			e = high
		}
	}
	return b.retnode(b.cube(lits))
}

// ShortestOnepathLen returns the number of literals in the result of
// ShortestOnepath, or -1 if n is False or is not valid.
func (b *BDD) ShortestOnepathLen(n Edge) int {
	b.err = nil
	if err := b.checkptr(n); err != nil {
		b.seterror(err, "wrong operand in call to ShortestOnepathLen (%s)", n)
		return -1
	}
	return b.pathlen(n.e, make(map[int]int))
}

// pathlen returns the length of the shortest path from e to True, or -1 if e is
// False. The memo table is indexed by edges, since the paths of e and its
// negation end on different constants.
func (b *BDD) pathlen(e int, memo map[int]int) int {
	switch e {
	case bddone:
		return 0
	case bddzero:
		return -1
	}
	if res, ok := memo[e]; ok {
		return res
	}
	low, high := b.cofactors(e, b.level(e))
	res := b.pathlen(low, memo)
	if l := b.pathlen(high, memo); res < 0 || (l >= 0 && l < res) {
		res = l
	}
	// a reduced node cannot have two False branches
	res++
	memo[e] = res
	return res
}
