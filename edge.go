// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import "fmt"

// Edge is a reference to a Boolean function stored in a BDD. An Edge points to
// a node and may carry a complement flag, meaning that it denotes the negation
// of the function rooted at this node. Since the representation is canonical,
// two edges of the same BDD denote the same function exactly when they are
// equal (with ==), as long as they were obtained after the last garbage
// collection that could have reclaimed their node.
//
// The zero value of Edge is the constant False. Edges returned by a BDD are
// bound to it; using them with another BDD, or after their node has been
// reclaimed, results in an error.
type Edge struct {
	mgr uint32 // identifier of the BDD owning the node, 0 for shared values
	gen uint32 // generation of the node slot when the edge was created
	e   int    // internal edge value
}

// Constant and sentinel values. They can be used with any BDD.
var (
	// Zero is the constant False.
	Zero = Edge{e: bddzero}
	// One is the constant True.
	One = Edge{e: bddone}
	// Error is returned when an operation fails because of resource exhaustion.
	Error = Edge{e: bdderr}
	// Invalid is returned when an operation is called with a wrong operand.
	Invalid = Edge{e: bddinv}
)

// IsZero returns true if e is the constant False.
func (e Edge) IsZero() bool { return e.e == bddzero }

// IsOne returns true if e is the constant True.
func (e Edge) IsOne() bool { return e.e == bddone }

// IsConst returns true if e is one of the two constants.
func (e Edge) IsConst() bool { return e.e == bddzero || e.e == bddone }

// IsError returns true if e is one of the sentinels Error or Invalid, meaning
// that the operation that returned it failed.
func (e Edge) IsError() bool { return e.e < 0 }

// Complemented returns true if e carries the complement flag. The constant True
// is the complement of False.
func (e Edge) Complemented() bool { return e.e >= 0 && e.e&1 == 1 }

// Not returns the negation of e. This operation does not need to create nodes
// and therefore never fails; the negation of a sentinel is itself.
func (e Edge) Not() Edge {
	if e.e < 0 {
		return e
	}
	return Edge{mgr: e.mgr, gen: e.gen, e: e.e ^ 1}
}

// ID returns the index of the node pointed to by e, 0 for the constants.
func (e Edge) ID() int {
	if e.e < 0 {
		return -1
	}
	return e.e >> 1
}

func (e Edge) String() string {
	switch {
	case e.e == bddzero:
		return "False"
	case e.e == bddone:
		return "True"
	case e.e == bdderr:
		return "Error"
	case e.e < 0:
		return "Invalid"
	case e.e&1 == 1:
		return fmt.Sprintf("~@%d", e.e>>1)
	default:
		return fmt.Sprintf("@%d", e.e>>1)
	}
}

// ************************************************************

// retnode builds an external handle from an internal edge. Negative values are
// turned into the sentinel corresponding to the current error status.
func (b *BDD) retnode(e int) Edge {
	if e < 0 {
		if IsErrInvalid(b.err) {
			return Invalid
		}
		return Error
	}
	if e < 2 {
		return Edge{e: e}
	}
	return Edge{mgr: b.id, gen: b.nd(e >> 1).gen, e: e}
}

// checkptr returns an error if n cannot be used as an operand with b.
func (b *BDD) checkptr(n Edge) error {
	switch {
	case n.e == bdderr:
		return ErrErrorOperand
	case n.e < 0:
		return ErrInvalidHandle
	case n.e < 2:
		return nil
	case n.mgr != b.id:
		return ErrForeignHandle
	case n.e>>1 >= b.size:
		return ErrInvalidHandle
	}
	nd := b.nd(n.e >> 1)
	if nd.low == -1 || nd.gen != n.gen {
		return ErrStaleHandle
	}
	return nil
}

// Valid returns true if n can be used as an operand with b, that is if n is a
// constant or if it was returned by b and its node has not been reclaimed.
func (b *BDD) Valid(n Edge) bool {
	return b.checkptr(n) == nil
}
