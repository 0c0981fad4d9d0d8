// Package safeprime computes safe primes, i.e. primes of the form 2p+1 where p is also prime.
// Products of two safe primes are the RSA moduli whose quadratic residues form the hidden
// order groups of package group.
package safeprime

import (
	"context"
	"crypto/rand"
	"io"

	"github.com/go-errors/errors"
	"golang.org/x/sync/errgroup"

	"github.com/privacybydesign/accumulator/big"
)

// Number of Miller-Rabin rounds applied to both p and (p-1)/2.
const certainty = 40

// Every this many candidates, Generate checks whether its context is done.
const cancelCheckInterval = 1000

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Generate a safe prime of the given size, reading randomness from crypto/rand, using the fact that:
//     If q is prime and 2^(2q) = 1 mod (2q+1), then 2q+1 is a safe prime.
// We take a random bigint q; if the above formula holds and q is prime, then we return 2q+1.
// (See https://www.ijipbangalore.org/abstracts_2(1)/p5.pdf and
// https://groups.google.com/group/sci.crypt/msg/34c4abf63568a8eb)
//
// Generation stops with ctx.Err() when ctx is done.
func Generate(ctx context.Context, bitsize int) (*big.Int, error) {
	return generate(ctx, rand.Reader, bitsize)
}

func generate(ctx context.Context, rnd io.Reader, bitsize int) (*big.Int, error) {
	if bitsize < 3 {
		return nil, errors.Errorf("safe primes of %d bits do not exist", bitsize)
	}

	var (
		max        = new(big.Int).Lsh(one, uint(bitsize-1)) // 2^(bitsize-1): q has bitsize-1 bits
		twoq       = new(big.Int)
		twoqone    = new(big.Int)
		twoexptwoq = new(big.Int)
		q          *big.Int
		err        error
	)

	for i := 0; ; i++ {
		if i%cancelCheckInterval == 0 {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
		}

		if q, err = big.RandInt(rnd, max); err != nil {
			return nil, errors.WrapPrefix(err, "failed to sample safe prime candidate", 0)
		}

		// Force q to exactly bitsize-1 bits and odd, so that 2q+1 has exactly bitsize bits.
		q.SetBit(q, bitsize-2, 1)
		q.SetBit(q, 0, 1)

		twoq.Lsh(q, 1)
		twoqone.Add(twoq, one)
		twoexptwoq.Exp(two, twoq, twoqone) // 2^(2q) mod (2q+1)

		if twoexptwoq.Cmp(one) == 0 && q.ProbablyPrime(certainty) {
			break
		}
	}

	if !ProbablySafePrime(twoqone, certainty) {
		return nil, errors.New("safeprime generation returned non-safeprime")
	}
	return twoqone, nil
}

// GenerateConcurrent generates count distinct safe primes of the given size, running one
// generator per requested prime concurrently. If any generator fails, or ctx is done, the
// others are stopped and the error is returned.
func GenerateConcurrent(ctx context.Context, bitsize, count int) ([]*big.Int, error) {
	primes := make([]*big.Int, count)
	eg, egCtx := errgroup.WithContext(ctx)
	for i := range primes {
		i := i
		eg.Go(func() error {
			p, err := Generate(egCtx, bitsize)
			if err != nil {
				return err
			}
			primes[i] = p // each goroutine writes only its own slot
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i := range primes {
		for j := 0; j < i; j++ {
			if primes[i].Cmp(primes[j]) == 0 {
				p, err := Generate(ctx, bitsize)
				if err != nil {
					return nil, err
				}
				primes[i] = p
				j = -1 // compare the replacement against all earlier primes again
			}
		}
	}
	return primes, nil
}

// ProbablySafePrime reports whether x is probably safe prime, by calling big.Int.ProbablyPrime(n)
// on x as well as on (x-1)/2.
//
// If x is safe prime, ProbablySafePrime returns true.
// If x is chosen randomly and not safe prime, ProbablyPrime probably returns false.
func ProbablySafePrime(x *big.Int, n int) bool {
	if x.Cmp(two) <= 0 {
		return false
	}
	if !x.ProbablyPrime(n) {
		return false
	}
	y := new(big.Int).Rsh(x, 1)
	return y.ProbablyPrime(n)
}
