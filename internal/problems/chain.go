// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package problems

import (
	"math/big"
	"time"

	"github.com/dalzilio/cedd"
)

// Chain builds the conjunction of N variables, starting from the last one, so
// that the result is a single path of N nodes. At each step we also build, and
// immediately drop, the exclusive or of the new variable with the current
// conjunction, to give some work to the garbage collector. Only the
// conjunction is referenced.
func Chain(N int, options ...cedd.Option) (Result, error) {
	start := time.Now()
	bdd, err := newBuilder(N, options...)
	if err != nil {
		return Result{}, err
	}
	acc := bdd.True()
	for i := N - 1; i >= 0 && bdd.err == nil; i-- {
		acc = bdd.keep(acc, bdd.And(bdd.Ithvar(i), acc))
		bdd.check(bdd.Xor(bdd.Ithvar(i), acc))
	}
	return bdd.result("chain", N, acc, big.NewInt(1), start)
}
