package hashing

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/privacybydesign/accumulator/big"
)

// DefaultPrimalityRounds is the number of Miller-Rabin rounds, in addition to the
// Baillie-PSW test that (*big.Int).ProbablyPrime always applies, used by HashToPrime.
// More rounds lower the probability of accepting a composite challenge
// (at most 4^-rounds for the Miller-Rabin part) at the cost of prime search time.
const DefaultPrimalityRounds = 32

// HashToPrime hashes values together with an incrementing counter, starting at 0, until the
// output is a probable prime, which it returns. See HashToPrimeRounds.
func HashToPrime(newHasher func() Hasher[*big.Int], values ...interface{}) *big.Int {
	return HashToPrimeRounds(newHasher, DefaultPrimalityRounds, values...)
}

// HashToPrimeRounds hashes (values, counter) for counter = 0, 1, 2, ... and returns the
// first output that passes ProbablyPrime(rounds). Probable primes are accepted as primes.
// There is no bound on the number of attempts; since primes have positive density the
// expected number is about ln(2^bitlength) for a hash of the given bitlength.
//
// It panics if rounds < 1.
func HashToPrimeRounds(newHasher func() Hasher[*big.Int], rounds int, values ...interface{}) *big.Int {
	checkRounds(rounds)
	for counter := uint64(0); ; counter++ {
		candidate := Hash(newHasher, values, counter)
		if candidate.ProbablyPrime(rounds) {
			Logger.Tracef("hash to prime: found prime after %d attempts", counter+1)
			return candidate
		}
	}
}

// HashToPrimeParallel computes the same prime as HashToPrimeRounds, testing workers
// counters at a time concurrently. If workers < 1, runtime.GOMAXPROCS(0) workers are used.
// newHasher must be safe for concurrent use. It returns ctx.Err() if ctx is done before
// a prime is found.
func HashToPrimeParallel(ctx context.Context, newHasher func() Hasher[*big.Int], rounds, workers int, values ...interface{}) (*big.Int, error) {
	checkRounds(rounds)
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	found := make([]*big.Int, workers)
	for start := uint64(0); ; start += uint64(workers) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var eg errgroup.Group
		for i := range found {
			i := i
			eg.Go(func() error {
				candidate := Hash(newHasher, values, start+uint64(i))
				if candidate.ProbablyPrime(rounds) {
					found[i] = candidate
				} else {
					found[i] = nil
				}
				return nil
			})
		}
		_ = eg.Wait() // workers never fail

		// The lowest counter wins, so that the output does not depend on scheduling
		for i, candidate := range found {
			if candidate != nil {
				Logger.Tracef("hash to prime: found prime after %d attempts", start+uint64(i)+1)
				return candidate, nil
			}
		}
	}
}

func checkRounds(rounds int) {
	if rounds < 1 {
		panic("hashing: primality test needs at least one round")
	}
}
