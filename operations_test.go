// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//********************************************************************************************

func TestIte(t *testing.T) {
	bdd, _ := New(4, Nodesize(5000), Cachesize(50))
	n1 := bdd.Makeset([]int{0, 2, 3})
	n2 := bdd.Makeset([]int{0, 3})
	actual := bdd.Equiv(bdd.Ite(n1, n2, bdd.Not(n2)), bdd.Or(bdd.And(n1, n2), bdd.And(bdd.Not(n1), bdd.Not(n2))))
	assert.Equal(t, bdd.True(), actual, "ite(f,g,h) <=> (f and g) or (-f and h)")

	x, y := bdd.Ithvar(1), bdd.Ithvar(2)
	assert.Equal(t, y, bdd.Ite(One, y, x))
	assert.Equal(t, x, bdd.Ite(Zero, y, x))
	assert.Equal(t, x, bdd.Ite(y, x, x))
	assert.Equal(t, bdd.Xor(y, x), bdd.Ite(y, x.Not(), x))
	assert.Equal(t, bdd.Or(y, x), bdd.Ite(y, One, x))
	assert.Equal(t, bdd.And(y, x), bdd.Ite(y, x, Zero))
	assert.Equal(t, bdd.Imp(y, x), bdd.Ite(y.Not(), One, x))
}

//********************************************************************************************

// TestOperations implements the same tests than the bddtest program in the
// Buddy distribution. It uses function Allsat for checking that all assignments
// are detected.
func TestOperations(t *testing.T) {
	bdd, _ := New(4, Nodesize(1000), Cachesize(1000))
	varnum := 4

	test1_check := func(x Edge) error {
		allsatBDD := x
		allsatSumBDD := bdd.False()
		// Calculate whole set of asignments and remove all assignments
		// from original set
		err := bdd.Allsat(x, func(varset []int) error {
			x := bdd.True()
			for k, v := range varset {
				switch v {
				case 0:
					x = bdd.And(x, bdd.NIthvar(k))
				case 1:
					x = bdd.And(x, bdd.Ithvar(k))
				}
			}
			// Sum up all assignments
			allsatSumBDD = bdd.Or(allsatSumBDD, x)
			// Remove assignment from initial set
			allsatBDD = bdd.Apply(allsatBDD, x, OPdiff)
			return nil
		})
		if err != nil {
			return err
		}

		// Now the summed set should be equal to the original set and the
		// subtracted set should be empty
		if !bdd.Equal(allsatSumBDD, x) {
			return fmt.Errorf("AllSat sum is not the initial BDD")
		}

		if !bdd.Equal(allsatBDD, bdd.False()) {
			return fmt.Errorf("AllSat is not False")
		}
		return nil
	}

	a := bdd.Ithvar(0)
	b := bdd.Ithvar(1)
	c := bdd.Ithvar(2)
	d := bdd.Ithvar(3)
	na := bdd.NIthvar(0)
	nb := bdd.NIthvar(1)
	nc := bdd.NIthvar(2)
	nd := bdd.NIthvar(3)

	assert.NoError(t, test1_check(bdd.True()))

	assert.NoError(t, test1_check(bdd.False()))

	// a & b | !a & !b
	assert.NoError(t, test1_check(bdd.Or(bdd.And(a, b), bdd.And(na, nb))))

	// a & b | c & d
	assert.NoError(t, test1_check(bdd.Or(bdd.And(a, b), bdd.And(c, d))))

	// a & !b | a & !d | a & b & !c
	assert.NoError(t, test1_check(bdd.Or(bdd.And(a, nb), bdd.And(a, nd), bdd.And(a, b, nc))))

	for i := 0; i < varnum; i++ {
		assert.NoError(t, test1_check(bdd.Ithvar(i)))
		assert.NoError(t, test1_check(bdd.NIthvar(i)))
	}

	rng := rand.New(rand.NewSource(42))
	set := bdd.True()
	for i := 0; i < 50; i++ {
		v := rng.Intn(varnum)
		if rng.Intn(2) == 0 {
			set = bdd.Or(set, bdd.Ithvar(v))
		} else {
			set = bdd.And(set, bdd.NIthvar(v))
		}
		assert.NoError(t, test1_check(set))
	}
}

//********************************************************************************************

func TestApplyOperators(t *testing.T) {
	bdd, _ := New(2, Nodesize(100))
	x, y := bdd.Ithvar(0), bdd.Ithvar(1)
	for op := OPand; op <= OPinvimp; op++ {
		res := bdd.Apply(x, y, op)
		require.False(t, res.IsError(), "%s", op)
		for a := 0; a < 4; a++ {
			vx, vy := a&1 == 1, a&2 == 2
			v, _ := bdd.Eval(res, []bool{vx, vy})
			assert.Equal(t, opres[op][b2i(vx)][b2i(vy)] == 1, v, "%v %s %v", vx, op, vy)
		}
	}
}

func TestQuantification(t *testing.T) {
	bdd, _ := New(4, Nodesize(1000))
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	s0 := bdd.Makeset([]int{0})
	s1 := bdd.Makeset([]int{1})

	assert.Equal(t, b, bdd.Exist(bdd.And(a, b), s0))
	assert.Equal(t, b, bdd.Forall(bdd.Or(a, b), s0))
	assert.Equal(t, Zero, bdd.Forall(bdd.And(a, b), s0))
	assert.Equal(t, a, bdd.AndExist(s1, bdd.And(a, b), bdd.Or(b, c)))
	assert.Equal(t, One, bdd.AppEx(a, b, OPxor, s1))
	assert.Equal(t, bdd.Exist(bdd.Imp(a, b), s0), bdd.AppEx(a, b, OPimp, s0))
	// quantification over the empty set is the identity
	assert.Equal(t, bdd.And(a, b), bdd.Exist(bdd.And(a, b), One))

	assert.Equal(t, Invalid, bdd.Exist(a, bdd.NIthvar(0)))
	assert.Equal(t, ErrNotVarset, errors.Cause(bdd.Err()))
	assert.Equal(t, Invalid, bdd.AppEx(a, b, OPand, bdd.Or(a, b)))
	assert.True(t, IsErrInvalid(bdd.Err()))
	assert.Equal(t, Invalid, bdd.AppEx(a, b, op_ite, s0))
}

func TestRestrictCompose(t *testing.T) {
	bdd, _ := New(3, Nodesize(1000))
	x0, x1, x2 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.And(x0, bdd.Or(x1, x2))

	assert.Equal(t, x0, bdd.Restrict(f, 1, true))
	assert.Equal(t, x0.Not(), bdd.Restrict(f.Not(), 1, true))
	assert.Equal(t, Zero, bdd.Restrict(f, 0, false))
	assert.Equal(t, bdd.And(x0, x1), bdd.Restrict(f, 2, false))
	assert.Equal(t, bdd.Or(x1, x2), bdd.Restrict(f, 0, true))
	assert.Equal(t, Invalid, bdd.Restrict(f, 3, true))

	assert.Equal(t, bdd.And(x0, x2), bdd.Compose(f, 1, x2))
	assert.Equal(t, x1, bdd.Compose(f, 0, x1))
	assert.Equal(t, bdd.And(x1, x0), bdd.Compose(bdd.And(x1, x2), 2, x0))
	assert.Equal(t, bdd.And(x1, x0.Not()), bdd.Compose(bdd.And(x1, x2).Not().Not(), 2, x0.Not()))
	assert.Equal(t, f, bdd.Compose(f, 1, x1))
	assert.Equal(t, bdd.Restrict(f, 2, true), bdd.Compose(f, 2, One))
	assert.Equal(t, Invalid, bdd.Compose(f, -1, x1))
}

func TestReplace(t *testing.T) {
	bdd, _ := New(4, Nodesize(1000))
	x := []Edge{bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2), bdd.Ithvar(3)}
	r, err := bdd.NewReplacer([]int{0, 1}, []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, "{0->2, 1->3}", r.String())
	assert.Equal(t, bdd.And(x[2], x[3].Not()), bdd.Replace(bdd.And(x[0], x[1].Not()), r))
	assert.Equal(t, bdd.Or(x[2], x[3]).Not(), bdd.Replace(bdd.Or(x[0], x[1]).Not(), r))

	// mapping a variable on one that is used below
	r2, err := bdd.NewReplacer([]int{0}, []int{1})
	require.NoError(t, err)
	assert.Equal(t, Invalid, bdd.Replace(bdd.And(x[0], x[1]), r2))
	assert.Equal(t, ErrReplaceLevel, errors.Cause(bdd.Err()))
	// but a variable can move below others when there is no conflict
	r3, err := bdd.NewReplacer([]int{0}, []int{3})
	require.NoError(t, err)
	assert.Equal(t, bdd.And(x[3], x[1].Not()), bdd.Replace(bdd.And(x[0], x[1].Not()), r3))

	_, err = bdd.NewReplacer([]int{0, 1}, []int{2})
	assert.Equal(t, ErrInvalidReplacer, errors.Cause(err))
	_, err = bdd.NewReplacer([]int{0, 0}, []int{2, 3})
	assert.Equal(t, ErrInvalidReplacer, errors.Cause(err))
	_, err = bdd.NewReplacer([]int{0, 1}, []int{1, 2})
	assert.Equal(t, ErrInvalidReplacer, errors.Cause(err))

	other, _ := New(4)
	r4, _ := other.NewReplacer([]int{0}, []int{2})
	assert.Equal(t, Invalid, bdd.Replace(x[0], r4))
}

func TestSets(t *testing.T) {
	bdd, _ := New(2, Nodesize(100))
	s := bdd.Makeset([]int{3, 1, 1, 2})
	assert.Equal(t, 4, bdd.Varnum())
	assert.Equal(t, []int{1, 2, 3}, bdd.Scanset(s))
	assert.Equal(t, One, bdd.Makeset(nil))
	assert.Nil(t, bdd.Scanset(One))
	assert.Equal(t, Invalid, bdd.Makeset([]int{-1}))
	assert.Equal(t, s, bdd.Support(bdd.Or(bdd.Ithvar(3), bdd.Xor(bdd.Ithvar(1), bdd.Ithvar(2)))))
	assert.Equal(t, One, bdd.Support(Zero))
}

func TestSatcount(t *testing.T) {
	bdd, _ := New(64, Nodesize(1000))
	n, err := bdd.SatcountUint64(bdd.Ithvar(0))
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<63, n)
	_, err = bdd.SatcountUint64(One)
	assert.True(t, IsErrOverflow(err))
	assert.Equal(t, "18446744073709551616", bdd.Satcount(One).String())

	// the count of a negation is the complement of the count
	f := bdd.Or(bdd.And(bdd.Ithvar(3), bdd.Ithvar(10)), bdd.Ithvar(40))
	all := bdd.Satcount(One)
	all.Sub(all, bdd.Satcount(f))
	assert.Equal(t, all, bdd.Satcount(f.Not()))

	count := 0
	err = bdd.Allsat(f, func(varset []int) error {
		count++
		assert.Len(t, varset, 64)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	stop := errors.New("stop")
	assert.Equal(t, stop, bdd.Allsat(f, func([]int) error { return stop }))
}

func TestAllnodes(t *testing.T) {
	bdd, _ := New(3, Nodesize(100))
	f := bdd.And(bdd.Ithvar(0), bdd.Or(bdd.Ithvar(1), bdd.Ithvar(2)))
	count := 0
	err := bdd.Allnodes(func(id, level, low, high int) error {
		count++
		assert.Zero(t, low&1, "low edge of node %d is complemented", id)
		return nil
	}, f)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	// marks are cleared after the traversal
	assert.Equal(t, uint64(3), bdd.Nodecount(f))
}

func TestCubes(t *testing.T) {
	bdd, _ := New(4, Nodesize(1000))
	x0, x1, x2, x3 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2), bdd.Ithvar(3)

	assert.True(t, bdd.IsCube(One))
	assert.True(t, bdd.IsPosCube(One))
	assert.False(t, bdd.IsCube(Zero))
	assert.False(t, bdd.IsPosCube(Zero))

	c := bdd.And(x0, x2.Not(), x3)
	assert.True(t, bdd.IsCube(c))
	assert.False(t, bdd.IsPosCube(c))
	assert.True(t, bdd.IsCube(bdd.Makeset([]int{0, 2})))
	assert.True(t, bdd.IsPosCube(bdd.Makeset([]int{0, 2})))
	assert.True(t, bdd.IsPosCube(x1))
	assert.True(t, bdd.IsCube(x1.Not()))
	assert.False(t, bdd.IsPosCube(x1.Not()))
	assert.True(t, bdd.IsCube(bdd.Or(x0, x1).Not()))
	assert.False(t, bdd.IsCube(bdd.Or(x0, x1)))
	assert.False(t, bdd.IsCube(bdd.Xor(x0, x1)))
	assert.False(t, bdd.IsCube(c.Not()))

	assert.False(t, bdd.IsCube(Invalid))
	assert.Error(t, bdd.Err())
}

func TestOnepath(t *testing.T) {
	bdd, _ := New(4, Nodesize(1000))
	x0, x1, x2, x3 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2), bdd.Ithvar(3)
	f := bdd.Or(x0, bdd.And(x1, x2, x3))

	p := bdd.Onepath(f)
	assert.Equal(t, bdd.And(x0.Not(), x1, x2, x3), p)
	assert.Equal(t, One, bdd.Imp(p, f))
	assert.Equal(t, x0, bdd.ShortestOnepath(f))
	assert.Equal(t, 1, bdd.ShortestOnepathLen(f))
	assert.Equal(t, bdd.And(x0.Not(), x1.Not()), bdd.ShortestOnepath(f.Not()))
	assert.Equal(t, 2, bdd.ShortestOnepathLen(f.Not()))

	assert.Equal(t, Zero, bdd.Onepath(Zero))
	assert.Equal(t, Zero, bdd.ShortestOnepath(Zero))
	assert.Equal(t, -1, bdd.ShortestOnepathLen(Zero))
	assert.Equal(t, One, bdd.Onepath(One))
	assert.Equal(t, 0, bdd.ShortestOnepathLen(One))

	assert.Equal(t, Invalid, bdd.Onepath(Invalid))
	assert.Equal(t, -1, bdd.ShortestOnepathLen(Invalid))
	assert.Error(t, bdd.Err())
}

func TestSymmetry(t *testing.T) {
	bdd, _ := New(4, Nodesize(1000))
	x0, x1, x2 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)

	f := bdd.Or(bdd.And(x0, x1), x2)
	assert.True(t, bdd.CheckSymmetry(f, 0, 1))
	assert.True(t, bdd.CheckSymmetry(f, 1, 0))
	assert.False(t, bdd.CheckSymmetry(f, 0, 2))
	assert.True(t, bdd.CheckSymmetry(f, 0, 0))
	assert.False(t, bdd.CheckNegSymmetry(f, 0, 1))
	// f does not depend on x3
	assert.False(t, bdd.CheckNegSymmetry(f, 0, 0))
	assert.True(t, bdd.CheckNegSymmetry(f, 3, 3))

	g := bdd.Xor(x0, x1)
	assert.True(t, bdd.CheckSymmetry(g, 0, 1))
	assert.True(t, bdd.CheckNegSymmetry(g, 0, 1))

	h := bdd.And(x0, x1.Not())
	assert.False(t, bdd.CheckSymmetry(h, 0, 1))
	assert.True(t, bdd.CheckNegSymmetry(h, 0, 1))
	assert.True(t, bdd.CheckNegSymmetry(h.Not(), 0, 1))

	assert.False(t, bdd.CheckSymmetry(f, 0, 7))
	assert.True(t, IsErrInvalid(bdd.Err()))
	assert.False(t, bdd.CheckSymmetry(Invalid, 0, 1))
	assert.Error(t, bdd.Err())
}

func TestComposeMap(t *testing.T) {
	bdd, _ := New(4, Nodesize(1000))
	x0, x1, x2, x3 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2), bdd.Ithvar(3)
	f := bdd.And(x0, bdd.Or(x1, x2))

	swap := bdd.ComposeMap(f, map[int]Edge{0: x1, 1: x0})
	assert.Equal(t, bdd.And(x1, bdd.Or(x0, x2)), swap)
	assert.Equal(t, swap.Not(), bdd.ComposeMap(f.Not(), map[int]Edge{0: x1, 1: x0}))
	// substitutions are simultaneous
	assert.Equal(t, x0, bdd.Compose(bdd.Compose(f, 0, x1), 1, x0))
	assert.NotEqual(t, x0, swap)

	assert.Equal(t, bdd.Compose(f, 2, x3.Not()), bdd.ComposeMap(f, map[int]Edge{2: x3.Not()}))
	assert.Equal(t, x2, bdd.ComposeMap(f, map[int]Edge{0: One, 1: Zero}))
	assert.Equal(t, bdd.And(x0, x3, bdd.Or(x1, x2)), bdd.ComposeMap(f, map[int]Edge{0: bdd.And(x0, x3), 3: x0}))
	assert.Equal(t, f, bdd.ComposeMap(f, nil))

	assert.Equal(t, Invalid, bdd.ComposeMap(f, map[int]Edge{5: x0}))
	assert.True(t, IsErrInvalid(bdd.Err()))
	assert.True(t, bdd.ComposeMap(f, map[int]Edge{0: Invalid}).IsError())
	assert.Error(t, bdd.Err())
}

func TestXorMoment(t *testing.T) {
	bdd, _ := New(3, Nodesize(1000))
	x0, x1, x2 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.And(x0, bdd.Or(x1, x2))

	assert.Equal(t, bdd.Or(x1, x2), bdd.XorMoment(f, 0))
	assert.Equal(t, bdd.And(x0, x2.Not()), bdd.XorMoment(f, 1))
	assert.Equal(t, bdd.XorMoment(f, 1), bdd.XorMoment(f.Not(), 1))
	assert.Equal(t, One, bdd.XorMoment(bdd.Xor(x0, x2), 2))
	assert.Equal(t, Zero, bdd.XorMoment(bdd.Xor(x0, x2), 1))
	assert.Equal(t, Invalid, bdd.XorMoment(f, 3))
}
