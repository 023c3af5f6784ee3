// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "fmt"

// Operator is a binary Boolean operation that can be used in Apply. Only
// operators OPand to OPnand can be used in AppEx.
type Operator int

const (
	OPand    Operator = iota // Boolean conjunction
	OPxor                    // Exclusive or
	OPor                     // Disjunction
	OPnand                   // Negation of and
	OPnor                    // Negation of or
	OPimp                    // Implication
	OPbiimp                  // Equivalence
	OPdiff                   // Difference, l ∧ ¬r
	OPless                   // Reverse difference, ¬l ∧ r
	OPinvimp                 // Reverse implication
	op_not                   // Negation, only used as a cache tag
)

// optable gives the truth table of each operator: bit 2*l+r is the value of
// (l op r).
var optable = [...]struct {
	name  string
	truth uint8
}{
	OPand:    {"and", 0b1000},
	OPxor:    {"xor", 0b0110},
	OPor:     {"or", 0b1110},
	OPnand:   {"nand", 0b0111},
	OPnor:    {"nor", 0b0001},
	OPimp:    {"imp", 0b1011},
	OPbiimp:  {"biimp", 0b1001},
	OPdiff:   {"diff", 0b0100},
	OPless:   {"less", 0b0010},
	OPinvimp: {"invimp", 0b1101},
	op_not:   {"not", 0},
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(optable) {
		return fmt.Sprintf("Operator(%d)", int(op))
	}
	return optable[op].name
}

// eval returns the value, 0 or 1, of (left op right) for constants left and
// right.
func (op Operator) eval(left, right int) int {
	return int(optable[op].truth>>(2*left+right)) & 1
}
