// Package group contains the capabilities that the proofs of this module require from a
// group, and QrGroup, an implementation over the quadratic residues modulo an RSA modulus
// of unknown factorization.
package group

import (
	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/accumulator/big"
)

// Group is a group over elements of type E with a distinguished base element.
// Implementations must be pure: no method mutates its arguments, and every method
// returns a fresh element.
type Group[E any] interface {
	// BaseElem returns the fixed distinguished element of the group, typically a generator.
	BaseElem() E
	// Op applies the group operation to a and b.
	Op(a, b E) E
	// Exp applies the group operation exp times to base; Exp(base, 0) is the identity.
	// It panics if exp is negative.
	Exp(base E, exp *big.Int) E
	// Equal reports whether a and b are the same group element.
	Equal(a, b E) bool
}

// InvertibleGroup is a Group in which exponents may be negative.
type InvertibleGroup[E any] interface {
	Group[E]
	// ExpSigned is Exp for signed exponents, with ExpSigned(base, -k) the inverse of
	// Exp(base, k). It panics if exp is negative and base has no inverse.
	ExpSigned(base E, exp *big.Int) E
}

var Logger *logrus.Logger = logrus.StandardLogger()
