// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

// begin resets the error status and the refstack. It is called at the start of
// every operation that may create nodes.
func (b *BDD) begin() {
	b.err = nil
	b.initref()
}

// not returns the negation of internal edge e. Negative values (errors) are
// left untouched.
func not(e int) int {
	if e < 0 {
		return e
	}
	return e ^ 1
}

// negif complements e when neg is 1.
func negif(e, neg int) int {
	if e < 0 {
		return e
	}
	return e ^ neg
}

// Not returns the negation of the expression corresponding to node n. With
// complement edges, this is done in constant time without creating nodes.
func (b *BDD) Not(n Edge) Edge {
	b.err = nil
	if err := b.checkptr(n); err != nil {
		return b.seterror(err, "wrong operand in call to Not(%s)", n)
	}
	return n.Not()
}

// Apply performs all of the basic bdd operations with two operands, such as
// AND, OR etc. Left and right are the operand and opr is the requested
// operation and must be one of the following:
//
//	Identifier    Description            Truth table
//
//	OPand         logical and            [0,0,0,1]
//	OPxor         logical xor            [0,1,1,0]
//	OPor          logical or             [0,1,1,1]
//	OPnand        logical not-and        [1,1,1,0]
//	OPnor         logical not-or         [1,0,0,0]
//	OPimp         implication            [1,1,0,1]
//	OPbiimp       equivalence            [1,0,0,1]
//	OPdiff        set difference         [0,0,1,0]
//	OPless        less than              [0,1,0,0]
//	OPinvimp      reverse implication    [1,0,1,1]
//
// All the operators are computed using only conjunction and exclusive or,
// together with negations, so they share the same cache.
func (b *BDD) Apply(left Edge, right Edge, op Operator) Edge {
	b.begin()
	if !op.valid() {
		return b.seterror(ErrInvalidOperator, "operator %d in call to Apply", int(op))
	}
	if err := b.checkptr(left); err != nil {
		return b.seterror(err, "wrong operand in call to Apply %s(left: %s, right: ...)", op, left)
	}
	if err := b.checkptr(right); err != nil {
		return b.seterror(err, "wrong operand in call to Apply %s(left: ..., right: %s)", op, right)
	}
	if left.e < 2 && right.e < 2 {
		return Edge{e: opres[op][left.e][right.e]}
	}
	b.pushref(left.e)
	b.pushref(right.e)
	res := b.apply(left.e, right.e, op)
	b.popref(2)
	return b.retnode(res)
}

func (b *BDD) apply(f, g int, op Operator) int {
	switch op {
	case OPand:
		return b.and(f, g)
	case OPxor:
		return b.xor(f, g)
	case OPor:
		return b.or(f, g)
	case OPnand:
		return not(b.and(f, g))
	case OPnor:
		return b.and(not(f), not(g))
	case OPimp:
		return not(b.and(f, not(g)))
	case OPbiimp:
		return not(b.xor(f, g))
	case OPdiff:
		return b.and(f, not(g))
	case OPless:
		return b.and(not(f), g)
	case OPinvimp:
		return not(b.and(not(f), g))
	}
	b.seterror(ErrInvalidOperator, "operator %s in apply", op)
	return bddinv
}

func (b *BDD) or(f, g int) int {
	return not(b.and(not(f), not(g)))
}

func (b *BDD) and(f, g int) int {
	switch {
	case f < 0 || g < 0:
		return bdderr
	case f == bddzero || g == bddzero || f == g^1:
		return bddzero
	case f == bddone || f == g:
		return g
	case g == bddone:
		return f
	}
	// the operation is commutative
	if f > g {
		f, g = g, f
	}
	if res := b.match(&b.applycache, f, g, 0, int32(OPand)); res >= 0 {
		return res
	}
	level := min(b.level(f), b.level(g))
	f0, f1 := b.cofactors(f, level)
	g0, g1 := b.cofactors(g, level)
	low := b.pushref(b.and(f0, g0))
	if low < 0 {
		b.popref(1)
		return low
	}
	high := b.pushref(b.and(f1, g1))
	res := b.makenode(level, low, high)
	b.popref(2)
	return b.store(&b.applycache, f, g, 0, int32(OPand), res)
}

func (b *BDD) xor(f, g int) int {
	switch {
	case f < 0 || g < 0:
		return bdderr
	case f == g:
		return bddzero
	case f == g^1:
		return bddone
	case f == bddzero:
		return g
	case g == bddzero:
		return f
	case f == bddone:
		return g ^ 1
	case g == bddone:
		return f ^ 1
	}
	// (~f xor g) == ~(f xor g), so we only cache results on regular edges
	neg := (f ^ g) & 1
	f &^= 1
	g &^= 1
	if f > g {
		f, g = g, f
	}
	if res := b.match(&b.applycache, f, g, 0, int32(OPxor)); res >= 0 {
		return negif(res, neg)
	}
	level := min(b.level(f), b.level(g))
	f0, f1 := b.cofactors(f, level)
	g0, g1 := b.cofactors(g, level)
	low := b.pushref(b.xor(f0, g0))
	if low < 0 {
		b.popref(1)
		return low
	}
	high := b.pushref(b.xor(f1, g1))
	res := b.makenode(level, low, high)
	b.popref(2)
	return negif(b.store(&b.applycache, f, g, 0, int32(OPxor), res), neg)
}

// ************************************************************

// fold computes the conjunction (or disjunction) of all the operands in n.
func (b *BDD) fold(op Operator, n []Edge) Edge {
	b.begin()
	for k, e := range n {
		if err := b.checkptr(e); err != nil {
			return b.seterror(err, "wrong operand (%d: %s) in call to %s", k, e, op)
		}
	}
	for _, e := range n {
		b.pushref(e.e)
	}
	res := bddone
	if op == OPor {
		res = bddzero
	}
	for _, e := range n {
		b.pushref(res)
		res = b.apply(res, e.e, op)
		b.popref(1)
		if res < 0 {
			break
		}
	}
	b.popref(len(n))
	return b.retnode(res)
}

// And returns the logical 'and' of a sequence of nodes or, equivalently,
// computes the intersection of a sequence of Boolean vectors. We return True
// when n is empty.
func (b *BDD) And(n ...Edge) Edge {
	return b.fold(OPand, n)
}

// Or returns the logical 'or' of a sequence of BDDs. We return False when n is
// empty.
func (b *BDD) Or(n ...Edge) Edge {
	return b.fold(OPor, n)
}

// Xor returns the exclusive or of n1 and n2.
func (b *BDD) Xor(n1, n2 Edge) Edge {
	return b.Apply(n1, n2, OPxor)
}

// Imp returns the logical 'implication' between two BDDs.
func (b *BDD) Imp(n1, n2 Edge) Edge {
	return b.Apply(n1, n2, OPimp)
}

// Equiv returns the logical 'bi-implication' between two BDDs.
func (b *BDD) Equiv(n1, n2 Edge) Edge {
	return b.Apply(n1, n2, OPbiimp)
}

// ************************************************************

// Ite, short for if-then-else operator, computes the BDD for the expression [(f
// /\ g) \/ (not f /\ h)] more efficiently than doing the three operations
// separately.
func (b *BDD) Ite(f, g, h Edge) Edge {
	b.begin()
	if err := b.checkptr(f); err != nil {
		return b.seterror(err, "wrong operand in call to Ite (f: %s)", f)
	}
	if err := b.checkptr(g); err != nil {
		return b.seterror(err, "wrong operand in call to Ite (g: %s)", g)
	}
	if err := b.checkptr(h); err != nil {
		return b.seterror(err, "wrong operand in call to Ite (h: %s)", h)
	}
	b.pushref(f.e)
	b.pushref(g.e)
	b.pushref(h.e)
	res := b.ite(f.e, g.e, h.e)
	b.popref(3)
	return b.retnode(res)
}

func (b *BDD) ite(f, g, h int) int {
	switch {
	case f < 0 || g < 0 || h < 0:
		return bdderr
	case f == bddone:
		return g
	case f == bddzero:
		return h
	case g == h:
		return g
	case g == h^1:
		return b.xor(f, h)
	case g == bddone || f == g:
		return b.or(f, h)
	case g == bddzero || f == g^1:
		return b.and(not(f), h)
	case h == bddzero || f == h:
		return b.and(f, g)
	case h == bddone || f == h^1:
		return not(b.and(f, not(g)))
	}
	// we normalize the operands so that f and g are regular edges
	if f&1 == 1 {
		f ^= 1
		g, h = h, g
	}
	neg := 0
	if g&1 == 1 {
		g ^= 1
		h ^= 1
		neg = 1
	}
	if res := b.match(&b.itecache, f, g, h, int32(op_ite)); res >= 0 {
		return negif(res, neg)
	}
	level := min(b.level(f), b.level(g), b.level(h))
	f0, f1 := b.cofactors(f, level)
	g0, g1 := b.cofactors(g, level)
	h0, h1 := b.cofactors(h, level)
	low := b.pushref(b.ite(f0, g0, h0))
	if low < 0 {
		b.popref(1)
		return low
	}
	high := b.pushref(b.ite(f1, g1, h1))
	res := b.makenode(level, low, high)
	b.popref(2)
	return negif(b.store(&b.itecache, f, g, h, int32(op_ite), res), neg)
}

// ************************************************************

// Exist returns the existential quantification of n for the variables in
// varset, where varset is a node built with a method such as Makeset. We return
// Invalid and set the error flag in b if varset is not a set of variables.
func (b *BDD) Exist(n, varset Edge) Edge {
	b.begin()
	if err := b.checkptr(n); err != nil {
		return b.seterror(err, "wrong node in call to Exist (n: %s)", n)
	}
	if err := b.checkptr(varset); err != nil {
		return b.seterror(err, "wrong varset in call to Exist (%s)", varset)
	}
	if err := b.quantset2cache(varset.e); err != nil {
		return b.seterror(err, "in call to Exist (varset: %s)", varset)
	}
	b.pushref(n.e)
	b.pushref(varset.e)
	res := b.quant(n.e, varset.e)
	b.popref(2)
	return b.retnode(res)
}

// Forall returns the universal quantification of n for the variables in
// varset, computed as the negation of Exist(Not(n), varset).
func (b *BDD) Forall(n, varset Edge) Edge {
	b.begin()
	if err := b.checkptr(n); err != nil {
		return b.seterror(err, "wrong node in call to Forall (n: %s)", n)
	}
	if err := b.checkptr(varset); err != nil {
		return b.seterror(err, "wrong varset in call to Forall (%s)", varset)
	}
	if err := b.quantset2cache(varset.e); err != nil {
		return b.seterror(err, "in call to Forall (varset: %s)", varset)
	}
	b.pushref(n.e)
	b.pushref(varset.e)
	res := not(b.quant(not(n.e), varset.e))
	b.popref(2)
	return b.retnode(res)
}

func (b *BDD) quant(n, varset int) int {
	if n < 0 {
		return n
	}
	if (n < 2) || (b.level(n) > b.quantlast) {
		return n
	}
	if res := b.match(&b.quantcache, n, varset, 0, 0); res >= 0 {
		return res
	}
	level := b.level(n)
	n0, n1 := b.cofactors(n, level)
	low := b.pushref(b.quant(n0, varset))
	if low < 0 {
		b.popref(1)
		return low
	}
	high := b.pushref(b.quant(n1, varset))
	var res int
	if b.quantset[level] == b.quantsetID {
		res = b.or(low, high)
	} else {
		res = b.makenode(level, low, high)
	}
	b.popref(2)
	return b.store(&b.quantcache, n, varset, 0, 0, res)
}

// AppEx applies the binary operator *op* on the two operands left and right
// then performs an existential quantification over the variables in varset.
// This is done in a bottom up manner such that both the apply and
// quantification is done on the lower nodes before stepping up to the higher
// nodes. This makes AppEx much more efficient than an apply operation followed
// by a quantification. Note that, when *op* is a conjunction, this operation
// returns the relational product of two BDDs.
func (b *BDD) AppEx(left Edge, right Edge, op Operator, varset Edge) Edge {
	b.begin()
	if !op.valid() {
		return b.seterror(ErrInvalidOperator, "operator %d in call to AppEx", int(op))
	}
	if err := b.checkptr(varset); err != nil {
		return b.seterror(err, "wrong varset in call to AppEx (%s)", varset)
	}
	if err := b.checkptr(left); err != nil {
		return b.seterror(err, "wrong operand in call to AppEx %s(left: %s)", op, left)
	}
	if err := b.checkptr(right); err != nil {
		return b.seterror(err, "wrong operand in call to AppEx %s(right: %s)", op, right)
	}
	if err := b.quantset2cache(varset.e); err != nil {
		return b.seterror(err, "in call to AppEx (varset: %s)", varset)
	}
	b.pushref(left.e)
	b.pushref(right.e)
	b.pushref(varset.e)
	res := b.appquant(left.e, right.e, op, varset.e)
	b.popref(3)
	return b.retnode(res)
}

// AndExist returns the "relational composition" of two nodes with respect to
// varset, meaning the result of (Exists varset . n1 & n2).
func (b *BDD) AndExist(varset, n1, n2 Edge) Edge {
	return b.AppEx(n1, n2, OPand, varset)
}

func (b *BDD) appquant(left, right int, op Operator, varset int) int {
	if left < 0 || right < 0 {
		return bdderr
	}
	// the case where we have no more variables to quantify, which includes the
	// case where both operands are constants
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	if leftlvl > b.quantlast && rightlvl > b.quantlast {
		return b.apply(left, right, op)
	}
	// next we check if the operation is already in our cache
	if res := b.match(&b.appexcache, left, right, varset, int32(op)); res >= 0 {
		return res
	}
	level := min(leftlvl, rightlvl)
	l0, l1 := b.cofactors(left, level)
	r0, r1 := b.cofactors(right, level)
	low := b.pushref(b.appquant(l0, r0, op, varset))
	if low < 0 {
		b.popref(1)
		return low
	}
	high := b.pushref(b.appquant(l1, r1, op, varset))
	var res int
	if b.quantset[level] == b.quantsetID {
		res = b.or(low, high)
	} else {
		res = b.makenode(level, low, high)
	}
	b.popref(2)
	return b.store(&b.appexcache, left, right, varset, int32(op), res)
}
