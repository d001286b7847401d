// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package problems

import (
	"math/big"
	"time"

	"github.com/dalzilio/cedd"
)

// solutions of the N-Queens problem, for some values of N.
var queensSolutions = map[int]int64{
	1: 1, 2: 0, 3: 0, 4: 2, 5: 10, 6: 4, 7: 40, 8: 92, 9: 352, 10: 724, 11: 2680, 12: 14200,
}

// NQueens computes solutions for the N-Queen chess problem and returns the
// number of solutions. It builds a BDD with NxN variables corresponding to the
// squares in the chess board like:
//
//	0 4  8 12
//	1 5  9 13
//	2 6 10 14
//	3 7 11 15
//
// One solution is then that 2,4,11,13 should be true, meaning a queen should be
// placed there:
//
//	. X . .
//	. . . X
//	X . . .
//	. . X .
func NQueens(N int, options ...cedd.Option) (Result, error) {
	start := time.Now()
	bdd, err := newBuilder(N*N, options...)
	if err != nil {
		return Result{}, err
	}
	queen := bdd.True()
	X := make([][]cedd.Edge, N)
	for i := range X {
		X[i] = make([]cedd.Edge, N)
		for j := range X[i] {
			X[i][j] = bdd.ref(bdd.Ithvar(i*N + j))
		}
	}
	// Place a queen in each row
	for i := 0; i < N; i++ {
		e := bdd.False()
		for j := 0; j < N; j++ {
			e = bdd.keep(e, bdd.Or(e, X[i][j]))
		}
		queen = bdd.keep(queen, bdd.And(queen, e))
		bdd.DelRef(e)
	}

	// excludes returns the conjunction of X[i][j] => !X[k][l] for all the
	// squares (k, l) returned by sel.
	excludes := func(i, j int, sel func(k int) (int, int, bool)) cedd.Edge {
		res := bdd.True()
		for k := 0; k < N; k++ {
			if r, l, ok := sel(k); ok {
				res = bdd.keep(res, bdd.And(res, bdd.Imp(X[i][j], X[r][l].Not())))
			}
		}
		return res
	}

	// Build requirements for each variable(field)
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			// No one in the same column
			a := excludes(i, j, func(k int) (int, int, bool) { return i, k, k != j })
			// No one in the same row
			b := excludes(i, j, func(k int) (int, int, bool) { return k, j, k != i })
			// No one in the same up-right diagonal
			c := excludes(i, j, func(k int) (int, int, bool) {
				ll := k - i + j
				return k, ll, ll >= 0 && ll < N && k != i
			})
			// No one in the same down-right diagonal
			d := excludes(i, j, func(k int) (int, int, bool) {
				ll := i + j - k
				return k, ll, ll >= 0 && ll < N && k != i
			})
			queen = bdd.keep(queen, bdd.And(queen, a, b, c, d))
			bdd.DelRef(a)
			bdd.DelRef(b)
			bdd.DelRef(c)
			bdd.DelRef(d)
		}
	}
	var expected *big.Int
	if v, ok := queensSolutions[N]; ok {
		expected = big.NewInt(v)
	}
	return bdd.result("nqueens", N, queen, expected, start)
}
