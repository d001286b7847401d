// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package problems contains classical BDD problems used for regression testing
// and benchmarks. They are adapted from the examples in the BuDDy distribution.
package problems

import (
	"math/big"
	"sort"
	"time"

	"github.com/dalzilio/cedd"
	"github.com/pkg/errors"
)

// Result is the outcome of running a problem.
type Result struct {
	Name     string        // Name of the problem
	Size     int           // Size parameter of the problem
	Count    *big.Int      // Number of solutions (sat. assignments) found
	Expected *big.Int      // Expected number of solutions, nil if unknown
	Nodes    uint64        // Number of nodes in the BDD of the solution
	Stats    cedd.Stats    // Statistics of the BDD at the end of the computation
	Duration time.Duration // Duration of the computation
}

// Ok returns true if the number of solutions is the one expected.
func (r Result) Ok() bool {
	return r.Expected == nil || (r.Count != nil && r.Count.Cmp(r.Expected) == 0)
}

// Problem is the type of functions building a problem of a given size with a
// new BDD configured using options.
type Problem func(size int, options ...cedd.Option) (Result, error)

// Registry lists the available problems by name.
var Registry = map[string]Problem{
	"chain":       Chain,
	"milner":      Milner,
	"milner-slow": MilnerSlow,
	"nqueens":     NQueens,
}

// Names returns the (sorted) names of the problems in Registry.
func Names() []string {
	res := make([]string, 0, len(Registry))
	for k := range Registry {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// ErrUnknownProblem is returned by Lookup for names not found in Registry.
var ErrUnknownProblem = errors.New("unknown problem")

// Lookup returns the problem with the given name.
func Lookup(name string) (Problem, error) {
	p, ok := Registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProblem, "%q", name)
	}
	return p, nil
}

// ************************************************************

// builder wraps a BDD to keep track of external references and of the first
// error raised during a computation. Operands built from a failed operation
// are sentinels, so the computation can go on until we check b.err.
type builder struct {
	*cedd.BDD
	err error
}

func newBuilder(varnum int, options ...cedd.Option) (*builder, error) {
	bdd, err := cedd.New(varnum, options...)
	if err != nil {
		return nil, err
	}
	return &builder{BDD: bdd}, nil
}

// check records the error status of the BDD if e is a sentinel.
func (b *builder) check(e cedd.Edge) cedd.Edge {
	if b.err == nil && e.IsError() {
		b.err = b.Err()
		if b.err == nil {
			b.err = cedd.ErrInvalidHandle
		}
	}
	return e
}

// ref protects e from garbage collection.
func (b *builder) ref(e cedd.Edge) cedd.Edge {
	return b.AddRef(b.check(e))
}

// keep references e and releases old, in this order, so that it is safe to use
// when e and old are equal.
func (b *builder) keep(old, e cedd.Edge) cedd.Edge {
	b.ref(e)
	b.DelRef(old)
	return e
}

// result builds a Result from root.
func (b *builder) result(name string, size int, root cedd.Edge, expected *big.Int, start time.Time) (Result, error) {
	if b.err != nil {
		return Result{Name: name, Size: size, Stats: b.Stats()}, errors.Wrapf(b.err, "%s(%d)", name, size)
	}
	res := Result{
		Name:     name,
		Size:     size,
		Count:    b.Satcount(root),
		Expected: expected,
		Nodes:    b.Nodecount(root),
		Duration: time.Since(start),
	}
	res.Stats = b.Stats()
	return res, nil
}
