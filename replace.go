// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Replacer is a renaming of variables, created with NewReplacer. It can only
// be used with the BDD that created it.
type Replacer struct {
	mgr  uint32  // BDD that created the replacer
	id   int     // key of the replacer in the operation cache
	to   []int32 // to[v] is the new level of variable v
	last int32   // largest variable that is renamed
}

func (r *Replacer) String() string {
	var pairs []string
	for from, to := range r.to {
		if int32(from) != to {
			pairs = append(pairs, fmt.Sprintf("%d->%d", from, to))
		}
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// image returns the new level of a variable and false if the variable, and
// every variable below it, is left unchanged.
func (r *Replacer) image(level int32) (int32, bool) {
	if level > r.last {
		return level, false
	}
	return r.to[level], true
}

// NewReplacer returns a Replacer mapping variable oldvars[k] to newvars[k].
// Variables must be declared, oldvars cannot contain duplicates, and a
// variable in newvars cannot also be renamed.
func (b *BDD) NewReplacer(oldvars []int, newvars []int) (*Replacer, error) {
	if len(oldvars) != len(newvars) {
		return nil, errors.Wrap(ErrInvalidReplacer, "unmatched length of slices")
	}
	if b.replaceid == (math.MaxInt32 >> 2) {
		return nil, errors.Wrap(ErrInvalidReplacer, "too many replacers created")
	}
	varnum := b.Varnum()
	r := &Replacer{mgr: b.id, to: make([]int32, varnum)}
	for v := range r.to {
		r.to[v] = int32(v)
	}
	renamed := make([]bool, varnum)
	for k, from := range oldvars {
		to := newvars[k]
		switch {
		case from < 0 || from >= varnum:
			return nil, errors.Wrapf(ErrInvalidReplacer, "unknown variable %d in oldvars", from)
		case to < 0 || to >= varnum:
			return nil, errors.Wrapf(ErrInvalidReplacer, "unknown variable %d in newvars", to)
		case renamed[from]:
			return nil, errors.Wrapf(ErrInvalidReplacer, "variable %d renamed twice", from)
		}
		renamed[from] = true
		r.to[from] = int32(to)
		r.last = max(r.last, int32(from))
	}
	for _, to := range newvars {
		if renamed[to] && r.to[to] != int32(to) {
			return nil, errors.Wrapf(ErrInvalidReplacer, "variable %d is both a source and a target", to)
		}
	}
	b.replaceid++
	r.id = b.replaceid
	return r, nil
}

// ************************************************************

// Replace returns n where variables are renamed following r. We return Invalid
// when a renamed variable collides with a variable tested in the same path,
// since the result is not a renaming anymore.
func (b *BDD) Replace(n Edge, r *Replacer) Edge {
	b.begin()
	if err := b.checkptr(n); err != nil {
		return b.seterror(err, "wrong operand in call to Replace (%s)", n)
	}
	if r == nil || r.mgr != b.id {
		return b.seterror(ErrInvalidReplacer, "in call to Replace")
	}
	b.pushref(n.e)
	res := b.replace(n.e, r)
	b.popref(1)
	return b.retnode(res)
}

func (b *BDD) replace(n int, r *Replacer) int {
	if n < 2 {
		return n
	}
	// renaming commutes with negation
	neg := n & 1
	n ^= neg
	level := b.level(n)
	image, ok := r.image(level)
	if !ok {
		return n ^ neg
	}
	if res := b.match(&b.replacecache, n, 0, 0, int32(r.id)); res >= 0 {
		return negif(res, neg)
	}
	n0, n1 := b.cofactors(n, level)
	low := b.pushref(b.replace(n0, r))
	if low < 0 {
		b.popref(1)
		return low
	}
	high := b.pushref(b.replace(n1, r))
	if high < 0 {
		b.popref(2)
		return high
	}
	res := b.correctify(image, low, high)
	b.popref(2)
	return negif(b.store(&b.replacecache, n, 0, 0, int32(r.id), res), neg)
}

// correctify builds the node (level, low, high) when the variables of low and
// high may be above level.
func (b *BDD) correctify(level int32, low, high int) int {
	if low < 0 || high < 0 {
		return bdderr
	}
	lowlvl := b.level(low)
	highlvl := b.level(high)
	if (level < lowlvl) && (level < highlvl) {
		return b.makenode(level, low, high)
	}
	if (level == lowlvl) || (level == highlvl) {
		b.seterror(ErrReplaceLevel, "level (%d) == low (%d) or high (%d)", level, lowlvl, highlvl)
		return bddinv
	}
	top := min(lowlvl, highlvl)
	l0, l1 := b.cofactors(low, top)
	h0, h1 := b.cofactors(high, top)
	left := b.pushref(b.correctify(level, l0, h0))
	if left < 0 {
		b.popref(1)
		return left
	}
	right := b.pushref(b.correctify(level, l1, h1))
	res := b.makenode(top, left, right)
	b.popref(2)
	return res
}
