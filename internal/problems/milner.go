// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package problems

import (
	"math/big"
	"time"

	"github.com/dalzilio/cedd"
)

// Milner computes the reachable states of a system composed of N cyclers,
// using the relational product (AndExist). For this system, we have an
// analytical formula to compute the size of the state space: N * 2^(4N+1).
func Milner(N int, options ...cedd.Option) (Result, error) {
	return milner("milner", N, true, options...)
}

// MilnerSlow computes the same state space than Milner but with a conjunction
// followed by a quantification.
func MilnerSlow(N int, options ...cedd.Option) (Result, error) {
	return milner("milner-slow", N, false, options...)
}

// milner is an example of using BDD for state space computation. It is
// directly adapted from the examples in the Buddy distribution.
func milner(name string, N int, fast bool, options ...cedd.Option) (Result, error) {
	start := time.Now()
	bdd, err := newBuilder(N*6, options...)
	if err != nil {
		return Result{}, err
	}
	c := make([]cedd.Edge, N)
	cp := make([]cedd.Edge, N)
	t := make([]cedd.Edge, N)
	tp := make([]cedd.Edge, N)
	h := make([]cedd.Edge, N)
	hp := make([]cedd.Edge, N)

	for n := 0; n < N; n++ {
		c[n] = bdd.ref(bdd.Ithvar(n * 6))
		cp[n] = bdd.ref(bdd.Ithvar(n*6 + 1))
		t[n] = bdd.ref(bdd.Ithvar(n*6 + 2))
		tp[n] = bdd.ref(bdd.Ithvar(n*6 + 3))
		h[n] = bdd.ref(bdd.Ithvar(n*6 + 4))
		hp[n] = bdd.ref(bdd.Ithvar(n*6 + 5))
	}

	nvar := make([]int, N*3)
	pvar := make([]int, N*3)
	for n := 0; n < N*3; n++ {
		nvar[n] = n * 2   // normal variables
		pvar[n] = n*2 + 1 // primed variables
	}
	replacer, err := bdd.NewReplacer(pvar, nvar)
	if err != nil {
		return Result{}, err
	}

	// We create a BDD for the initial state of Milner's cyclers.
	I := bdd.ref(bdd.And(c[0], h[0].Not(), t[0].Not()))
	for i := 1; i < N; i++ {
		I = bdd.keep(I, bdd.And(I, c[i].Not(), h[i].Not(), t[i].Not()))
	}

	// A builds a BDD expressing that all other variables than 'z' is unchanged.
	// The result is referenced.
	A := func(x, y []cedd.Edge, z int) cedd.Edge {
		res := bdd.True()
		for i := 0; i < N; i++ {
			if i != z {
				res = bdd.keep(res, bdd.And(res, bdd.Equiv(x[i], y[i])))
			}
		}
		return res
	}

	// and computes the conjunction of the literals in l and of the (referenced)
	// frame conditions in a, that are released.
	and := func(l []cedd.Edge, a ...cedd.Edge) cedd.Edge {
		res := bdd.ref(bdd.And(append(l, a...)...))
		for _, v := range a {
			bdd.DelRef(v)
		}
		return res
	}

	// Now we compute the transition relation
	T := bdd.False() // The monolithic transition relation
	for i := 0; i < N; i++ {
		P1 := and([]cedd.Edge{c[i], cp[i].Not(), tp[i], t[i].Not(), hp[i]},
			A(c, cp, i), A(t, tp, i), A(h, hp, i))
		P2 := and([]cedd.Edge{h[i], hp[i].Not(), cp[(i+1)%N]},
			A(c, cp, (i+1)%N), A(h, hp, i), A(t, tp, N))
		E := and([]cedd.Edge{t[i], tp[i].Not()},
			A(t, tp, i), A(h, hp, N), A(c, cp, N))
		T = bdd.keep(T, bdd.Or(T, P1, P2, E))
		bdd.DelRef(P1)
		bdd.DelRef(P2)
		bdd.DelRef(E)
	}

	// We compute the reachable states.
	R := I // Reachable state space
	normvar := bdd.ref(bdd.Makeset(nvar))
	for bdd.err == nil {
		prev := R
		if fast {
			R = bdd.keep(R, bdd.Or(bdd.Replace(bdd.AndExist(normvar, R, T), replacer), R))
		} else {
			R = bdd.keep(R, bdd.Or(bdd.Replace(bdd.Exist(bdd.And(R, T), normvar), replacer), R))
		}
		if prev == R {
			break
		}
	}
	expected := big.NewInt(int64(N))
	pow := big.NewInt(0)
	pow.SetBit(pow, 4*N+1, 1)
	expected.Mul(expected, pow)
	return bdd.result(name, N, R, expected, start)
}
