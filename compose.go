// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

// Restrict returns the cofactor of f where the variable at level is fixed to
// value. The result does not depend on this variable.
func (b *BDD) Restrict(f Edge, level int, value bool) Edge {
	b.begin()
	if err := b.checkptr(f); err != nil {
		return b.seterror(err, "wrong operand in call to Restrict (f: %s)", f)
	}
	if level < 0 || level >= int(b.varnum) {
		return b.seterror(ErrUnknownVariable, "variable %d in call to Restrict", level)
	}
	val := 0
	if value {
		val = 1
	}
	b.pushref(f.e)
	res := b.restrict(f.e, int32(level), val)
	b.popref(1)
	return b.retnode(res)
}

func (b *BDD) restrict(f int, level int32, val int) int {
	if f < 2 {
		return f
	}
	flvl := b.level(f)
	if flvl > level {
		return f
	}
	if flvl == level {
		low, high := b.cofactors(f, level)
		if val == 1 {
			return high
		}
		return low
	}
	// restrict commutes with negation, so we only cache regular edges
	neg := f & 1
	f ^= neg
	key := int(level)<<1 | val
	if res := b.match(&b.restrictcache, f, key, 0, 0); res >= 0 {
		return negif(res, neg)
	}
	f0, f1 := b.cofactors(f, flvl)
	low := b.pushref(b.restrict(f0, level, val))
	if low < 0 {
		b.popref(1)
		return low
	}
	high := b.pushref(b.restrict(f1, level, val))
	res := b.makenode(flvl, low, high)
	b.popref(2)
	return negif(b.store(&b.restrictcache, f, key, 0, 0, res), neg)
}

// ************************************************************

// Compose returns the result of substituting g for the variable at level in f.
// Function g may depend on any variable, including the one it replaces.
func (b *BDD) Compose(f Edge, level int, g Edge) Edge {
	b.begin()
	if err := b.checkptr(f); err != nil {
		return b.seterror(err, "wrong operand in call to Compose (f: %s)", f)
	}
	if err := b.checkptr(g); err != nil {
		return b.seterror(err, "wrong operand in call to Compose (g: %s)", g)
	}
	if level < 0 || level >= int(b.varnum) {
		return b.seterror(ErrUnknownVariable, "variable %d in call to Compose", level)
	}
	b.pushref(f.e)
	b.pushref(g.e)
	res := b.compose(f.e, int32(level), g.e)
	b.popref(2)
	return b.retnode(res)
}

// compose rebuilds each node above level with ite(x, high, low), so that the
// result is correct even when g has variables above the level of the node.
func (b *BDD) compose(f int, level int32, g int) int {
	if f < 2 {
		return f
	}
	flvl := b.level(f)
	if flvl > level {
		return f
	}
	neg := f & 1
	f ^= neg
	if res := b.match(&b.composecache, f, g, int(level), int32(op_compose)); res >= 0 {
		return negif(res, neg)
	}
	f0, f1 := b.cofactors(f, flvl)
	var res int
	if flvl == level {
		res = b.ite(g, f1, f0)
	} else {
		low := b.pushref(b.compose(f0, level, g))
		if low < 0 {
			b.popref(1)
			return low
		}
		high := b.pushref(b.compose(f1, level, g))
		if high < 0 {
			b.popref(2)
			return high
		}
		x := b.pushref(b.makenode(flvl, bddzero, bddone))
		res = b.ite(x, high, low)
		b.popref(3)
	}
	return negif(b.store(&b.composecache, f, g, int(level), int32(op_compose), res), neg)
}

// ComposeMap returns the result of substituting simultaneously m[v] for every
// variable v in the domain of m. Functions in m may depend on any variable,
// including the ones being replaced.
func (b *BDD) ComposeMap(f Edge, m map[int]Edge) Edge {
	b.begin()
	if err := b.checkptr(f); err != nil {
		return b.seterror(err, "wrong operand in call to ComposeMap (f: %s)", f)
	}
	last := int32(-1)
	for v, g := range m {
		if v < 0 || v >= int(b.varnum) {
			return b.seterror(ErrUnknownVariable, "variable %d in call to ComposeMap", v)
		}
		if err := b.checkptr(g); err != nil {
			return b.seterror(err, "wrong operand in call to ComposeMap (%d: %s)", v, g)
		}
		last = max(last, int32(v))
	}
	if last < 0 {
		return f
	}
	// sub[v] is -1 for variables left unchanged
	sub := make([]int, last+1)
	for v := range sub {
		sub[v] = -1
	}
	for v, g := range m {
		sub[v] = b.pushref(g.e)
	}
	b.pushref(f.e)
	b.composeid++
	res := b.composemap(f.e, sub, b.composeid)
	b.popref(len(m) + 1)
	return b.retnode(res)
}

// composemap uses the identifier of the call as a key in the cache, since the
// result depends on the whole substitution.
func (b *BDD) composemap(f int, sub []int, id int) int {
	if f < 2 {
		return f
	}
	flvl := b.level(f)
	if int(flvl) >= len(sub) {
		return f
	}
	neg := f & 1
	f ^= neg
	if res := b.match(&b.composecache, f, 0, id, int32(op_composemap)); res >= 0 {
		return negif(res, neg)
	}
	f0, f1 := b.cofactors(f, flvl)
	low := b.pushref(b.composemap(f0, sub, id))
	if low < 0 {
		b.popref(1)
		return low
	}
	high := b.pushref(b.composemap(f1, sub, id))
	if high < 0 {
		b.popref(2)
		return high
	}
	x := sub[flvl]
	if x < 0 {
		x = b.makenode(flvl, bddzero, bddone)
	}
	b.pushref(x)
	res := b.ite(x, high, low)
	b.popref(3)
	return negif(b.store(&b.composecache, f, 0, id, int32(op_composemap), res), neg)
}

// ************************************************************

// CheckSymmetry returns true if f is left unchanged when swapping the variables
// at levels x and y, that is if f[x:=0, y:=1] == f[x:=1, y:=0].
func (b *BDD) CheckSymmetry(f Edge, x, y int) bool {
	return b.symmetric(f, x, y, 0, "CheckSymmetry")
}

// CheckNegSymmetry returns true if f is left unchanged when replacing x with
// the negation of y, and y with the negation of x, that is if
// f[x:=0, y:=0] == f[x:=1, y:=1].
func (b *BDD) CheckNegSymmetry(f Edge, x, y int) bool {
	return b.symmetric(f, x, y, 1, "CheckNegSymmetry")
}

func (b *BDD) symmetric(f Edge, x, y int, neg int, caller string) bool {
	b.begin()
	if err := b.checkptr(f); err != nil {
		b.seterror(err, "wrong operand in call to %s (f: %s)", caller, f)
		return false
	}
	for _, v := range []int{x, y} {
		if v < 0 || v >= int(b.varnum) {
			b.seterror(ErrUnknownVariable, "variable %d in call to %s", v, caller)
			return false
		}
	}
	if x == y && neg == 0 {
		return true
	}
	b.pushref(f.e)
	f0 := b.pushref(b.restrict(f.e, int32(x), 0))
	f0 = b.pushref(b.restrict(f0, int32(y), 1^neg))
	f1 := b.pushref(b.restrict(f.e, int32(x), 1))
	f1 = b.restrict(f1, int32(y), neg)
	b.popref(4)
	if f0 < 0 || f1 < 0 {
		return false
	}
	return f0 == f1
}

// XorMoment returns the Boolean difference of f with respect to the variable at
// level, that is f[x:=0] xor f[x:=1]. The result is False if and only if f does
// not depend on this variable.
func (b *BDD) XorMoment(f Edge, level int) Edge {
	b.begin()
	if err := b.checkptr(f); err != nil {
		return b.seterror(err, "wrong operand in call to XorMoment (f: %s)", f)
	}
	if level < 0 || level >= int(b.varnum) {
		return b.seterror(ErrUnknownVariable, "variable %d in call to XorMoment", level)
	}
	b.pushref(f.e)
	f0 := b.pushref(b.restrict(f.e, int32(level), 0))
	f1 := b.pushref(b.restrict(f.e, int32(level), 1))
	res := b.xor(f0, f1)
	b.popref(3)
	return b.retnode(res)
}
