// Package hashing contains a hash abstraction that is generic over the type of its output,
// and the hash-to-prime derivation built on top of it that supplies the prime challenges
// of the Fiat-Shamir transformed proofs in this module.
//
// A hasher is selected by passing its constructor:
//
//	alpha := hashing.Hash(hashing.NewBlake2b, base, result, z)
//	l := hashing.HashToPrime(hashing.NewBlake2b, base, result, z)
//
// Values are fed to the hasher in their Core Deterministic CBOR encoding (see package cbor),
// so any value encodable by that package can be hashed, including *big.Int.
package hashing

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/accumulator/cbor"
)

// Hasher is a hash function that absorbs bytes through its Write method, like hash.Hash,
// but which produces an output of arbitrary type T rather than a byte slice.
type Hasher[T any] interface {
	io.Writer
	// Finalize finishes the hash and returns its output. A Hasher is not used again
	// after Finalize.
	Finalize() T
}

var Logger *logrus.Logger = logrus.StandardLogger()

// Hash feeds the canonical encoding of values, as a single CBOR array, into a fresh Hasher
// obtained from newHasher, and returns its output.
//
// Hash panics if one of the values has no CBOR encoding: this is a programming error
// of the caller, not a property of the input.
func Hash[T any](newHasher func() Hasher[T], values ...interface{}) T {
	if values == nil {
		values = []interface{}{}
	}
	h := newHasher()
	if err := cbor.Encode(h, values); err != nil {
		panic(fmt.Sprintf("hashing: value has no canonical encoding: %v", err))
	}
	return h.Finalize()
}
