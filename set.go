// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import (
	"sort"
)

// Makeset returns a node corresponding to the conjunction (the cube) of all the
// variable in varset, in their positive form. It is such that
// Scanset(Makeset(a)) == a, up to the order and repetitions of variables. The
// number of variables is extended if needed. We return Invalid and set the
// error condition in b if one of the variables is negative.
func (b *BDD) Makeset(varset []int) Edge {
	b.begin()
	levels := make([]int, 0, len(varset))
	last := -1
	for _, v := range varset {
		if v < 0 || v >= int(_MAXVAR) {
			return b.seterror(ErrUnknownVariable, "variable %d in call to Makeset", v)
		}
		levels = append(levels, v)
		if v > last {
			last = v
		}
	}
	if last >= int(b.varnum) {
		if err := b.SetVarnum(last + 1); err != nil {
			return b.seterror(err, "in call to Makeset")
		}
	}
	// we build the cube bottom-up, starting with the last variable
	sort.Sort(sort.Reverse(sort.IntSlice(levels)))
	res := bddone
	for k, level := range levels {
		if k > 0 && level == levels[k-1] {
			continue
		}
		b.pushref(res)
		res = b.makenode(int32(level), bddzero, res)
		b.popref(1)
		if res < 0 {
			break
		}
	}
	return b.retnode(res)
}

// Scanset returns the set of variables (levels) found when following the high
// branch of node n. This is the dual of function Makeset. The result may be nil
// if there is an error. The result is sorted in increasing order.
func (b *BDD) Scanset(n Edge) []int {
	b.err = nil
	if err := b.checkptr(n); err != nil {
		b.seterror(err, "wrong operand in call to Scanset (%s)", n)
		return nil
	}
	if n.e < 2 {
		return nil
	}
	res := []int{}
	for e := n.e; e >= 2; {
		level := b.level(e)
		res = append(res, int(level))
		_, e = b.cofactors(e, level)
	}
	return res
}

// IsCube returns true if n is a conjunction of literals. The constant True is
// the empty cube, while False (and any invalid edge) is not a cube.
func (b *BDD) IsCube(n Edge) bool {
	return b.iscube(n, false, "IsCube")
}

// IsPosCube returns true if n is a conjunction of positive literals, that is if
// n could have been built with Makeset.
func (b *BDD) IsPosCube(n Edge) bool {
	return b.iscube(n, true, "IsPosCube")
}

func (b *BDD) iscube(n Edge, positive bool, caller string) bool {
	b.err = nil
	if err := b.checkptr(n); err != nil {
		b.seterror(err, "wrong operand in call to %s (%s)", caller, n)
		return false
	}
	if n.e == bddzero {
		return false
	}
	// nodes are reduced, so a branch that is not False always leads to True
	for e := n.e; e >= 2; {
		low, high := b.cofactors(e, b.level(e))
		switch {
		case low == bddzero:
			e = high
		case high == bddzero && !positive:
			e = low
		default:
			return false
		}
	}
	return true
}

// cubelit is a variable with a polarity, val is 1 for the positive literal.
type cubelit struct {
	level int32
	val   int
}

// cube returns the conjunction of the literals in lits, given in increasing
// order of levels.
func (b *BDD) cube(lits []cubelit) int {
	res := bddone
	for k := len(lits) - 1; k >= 0; k-- {
		b.pushref(res)
		if lits[k].val == 1 {
			res = b.makenode(lits[k].level, bddzero, res)
		} else {
			res = b.makenode(lits[k].level, res, bddzero)
		}
		b.popref(1)
		if res < 0 {
			return res
		}
	}
	return res
}
