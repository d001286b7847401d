// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

// Operator describe the potential (binary) operations available on an Apply.
// All of them can be used in AppEx.
type Operator int

const (
	OPand    Operator = iota // Boolean conjunction
	OPxor                    // Exclusive or
	OPor                     // Disjunction
	OPnand                   // Negation of and
	OPnor                    // Negation of or
	OPimp                    // Implication
	OPbiimp                  // Equivalence
	OPdiff                   // Difference
	OPless                   // Set difference
	OPinvimp                 // Reverse implication
	op_ite                   // Used in caches
	op_compose               // same
	op_composemap            // same
)

var opnames = [13]string{
	OPand:         "and",
	OPxor:         "xor",
	OPor:          "or",
	OPnand:        "nand",
	OPnor:         "nor",
	OPimp:         "imp",
	OPbiimp:       "biimp",
	OPdiff:        "diff",
	OPless:        "less",
	OPinvimp:      "invimp",
	op_ite:        "ite",
	op_compose:    "compose",
	op_composemap: "composemap",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(opnames) {
		return "unknown"
	}
	return opnames[op]
}

// valid returns true for the operators accepted by Apply.
func (op Operator) valid() bool {
	return op >= OPand && op <= OPinvimp
}

// opres gives the truth table of each operator: opres[op][l][r] is the result
// of (l op r) for Boolean values l and r.
var opres = [10][2][2]int{
	//                      00    01               10    11
	OPand:    {0: [2]int{0: 0, 1: 0}, 1: [2]int{0: 0, 1: 1}}, // 0001
	OPxor:    {0: [2]int{0: 0, 1: 1}, 1: [2]int{0: 1, 1: 0}}, // 0110
	OPor:     {0: [2]int{0: 0, 1: 1}, 1: [2]int{0: 1, 1: 1}}, // 0111
	OPnand:   {0: [2]int{0: 1, 1: 1}, 1: [2]int{0: 1, 1: 0}}, // 1110
	OPnor:    {0: [2]int{0: 1, 1: 0}, 1: [2]int{0: 0, 1: 0}}, // 1000
	OPimp:    {0: [2]int{0: 1, 1: 1}, 1: [2]int{0: 0, 1: 1}}, // 1101
	OPbiimp:  {0: [2]int{0: 1, 1: 0}, 1: [2]int{0: 0, 1: 1}}, // 1001
	OPdiff:   {0: [2]int{0: 0, 1: 0}, 1: [2]int{0: 1, 1: 0}}, // 0010
	OPless:   {0: [2]int{0: 0, 1: 1}, 1: [2]int{0: 0, 1: 0}}, // 0100
	OPinvimp: {0: [2]int{0: 1, 1: 0}, 1: [2]int{0: 1, 1: 1}}, // 1011
}
