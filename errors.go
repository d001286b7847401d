// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import (
	"github.com/pkg/errors"
)

// GenericError is the base of all the errors returned by the library. Errors
// are grouped in classes so that they can be tested without resorting to
// partial string matches.
type GenericError string

// InvalidError is the class of errors caused by a wrong operand, such as a
// handle from another BDD or a handle to a node that has been collected.
type InvalidError GenericError

// MemoryError is the class of errors raised when we cannot allocate a node,
// even after garbage collection and resizing.
type MemoryError GenericError

// OverflowError is the class of errors raised when a result does not fit in a
// fixed-width integer.
type OverflowError GenericError

// common errors - keep in alphabetic order
var (
	ErrBadVarnum       = InvalidError("bad number of variables")
	ErrErrorOperand    = InvalidError("operand is an error handle")
	ErrForeignHandle   = InvalidError("handle belongs to another BDD")
	ErrInvalidHandle   = InvalidError("invalid handle")
	ErrInvalidOperator = InvalidError("operator not supported")
	ErrInvalidReplacer = InvalidError("invalid replacer")
	ErrNotVarset       = InvalidError("not a set of variables")
	ErrOutOfMemory     = MemoryError("unable to free memory or resize BDD")
	ErrOverflow        = OverflowError("result does not fit in 64 bits")
	ErrReplaceLevel    = InvalidError("replace maps a variable onto a level already used")
	ErrStaleHandle     = InvalidError("handle refers to a collected node")
	ErrUnknownVariable = InvalidError("unknown variable")
)

func (e GenericError) Error() string  { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e MemoryError) Error() string   { return string(e) }
func (e OverflowError) Error() string { return string(e) }

// IsErrInvalid returns true if the (possibly wrapped) error e is caused by an
// invalid operand.
func IsErrInvalid(e error) bool { _, ok := errors.Cause(e).(InvalidError); return ok }

// IsErrMemory returns true if e is caused by memory exhaustion.
func IsErrMemory(e error) bool { _, ok := errors.Cause(e).(MemoryError); return ok }

// IsErrOverflow returns true if e is caused by an arithmetic overflow.
func IsErrOverflow(e error) bool { _, ok := errors.Cause(e).(OverflowError); return ok }

// Err returns the error raised during the last operation, or nil if it
// completed successfully. Each call to an operation resets the error status,
// and the BDD remains usable after an error.
func (b *BDD) Err() error {
	return b.err
}

// Error returns the error status of the BDD. We return an empty string if
// there are no errors.
func (b *BDD) Error() string {
	if b.err == nil {
		return ""
	}
	return b.err.Error()
}

// Errored returns true if there was an error during the last computation.
func (b *BDD) Errored() bool {
	return b.err != nil
}

// seterror records err, with some extra context, as the error status of b and
// returns the sentinel corresponding to its class: Invalid for wrong operands
// and Error otherwise. If there was already an error during the current
// operation, we keep the first one.
func (b *BDD) seterror(err error, format string, a ...interface{}) Edge {
	if b.err == nil {
		b.err = errors.Wrapf(err, format, a...)
		if b.log != nil {
			b.log.Warnf("%s", b.err)
		}
	}
	if IsErrInvalid(b.err) {
		return Invalid
	}
	return Error
}

// memerror is used inside recursive computations when no node can be
// allocated; the returned value is propagated up to the caller.
func (b *BDD) memerror(level int32) int {
	b.seterror(ErrOutOfMemory, "cannot allocate node at level %d (%d nodes)", level, b.size)
	return bdderr
}
