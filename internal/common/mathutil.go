// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/accumulator/big"
)

// Some utility code (mostly math stuff) useful in various places in this
// module.

var (
	bigONE = big.NewInt(1)
)

var ErrNoModInverse = errors.New("modular inverse does not exist")

// FloorDivMod returns q = floor(x/m) and r = x - q*m, so that 0 <= r < m also for
// negative x. It panics if m <= 0.
//
// Note that Go's Quo and Rem truncate towards zero; for negative x they
// would return a negative remainder. Div and Mod implement Euclidean division,
// which coincides with floor division for positive m.
func FloorDivMod(x, m *big.Int) (q, r *big.Int) {
	if m.Sign() <= 0 {
		panic("FloorDivMod: divisor must be positive")
	}
	q, r = new(big.Int).DivMod(x, m, new(big.Int))
	return q, r
}

// ModInverse returns ia, the inverse of a modulo n, if a and n are coprime.
// This function was taken from Go's RSA implementation
func ModInverse(a, n *big.Int) (ia *big.Int, ok bool) {
	g := new(big.Int)
	x := new(big.Int)
	y := new(big.Int)
	g.GCD(x, y, new(big.Int).Mod(a, n), n)
	if g.Cmp(bigONE) != 0 {
		// In this case, a and n aren't coprime and we cannot calculate
		// the inverse.
		return
	}

	if x.Cmp(bigONE) < 0 {
		// 0 is not the multiplicative inverse of any element so, if x
		// < 1, then x is negative.
		x.Add(x, n)
	}

	return x, true
}

// ModPow computes x^y mod m. The exponent (y) can be negative, in which case it
// uses the modular inverse to compute the result (in contrast to Go's Exp
// function).
func ModPow(x, y, m *big.Int) (*big.Int, error) {
	if y.Sign() == -1 {
		t, ok := ModInverse(x, m)
		if !ok {
			return nil, ErrNoModInverse
		}
		return t.Exp(t, new(big.Int).Neg(y), m), nil
	}
	return new(big.Int).Exp(x, y, m), nil
}

// Coprime reports whether gcd(a, n) = 1.
func Coprime(a, n *big.Int) bool {
	return new(big.Int).GCD(nil, nil, a, n).Cmp(bigONE) == 0
}

// RandomQR returns a uniformly random quadratic residue modulo n, i.e. the square
// of a random element of (Z/nZ)*.
func RandomQR(rnd io.Reader, n *big.Int) (*big.Int, error) {
	for {
		r, err := big.RandInt(rnd, n)
		if err != nil {
			return nil, err
		}
		if r.Sign() > 0 && Coprime(r, n) {
			return r.Mul(r, r).Mod(r, n), nil
		}
	}
}
