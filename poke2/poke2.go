// Package poke2 implements the non-interactive Proof of Knowledge of Exponent (PoKE2) of
// Boneh, Bünz and Fisch, "Batching Techniques for Accumulators with Applications to IOPs
// and Stateless Blockchains" (https://eprint.iacr.org/2018/1188).
//
// Given base and result = base^exp in a group of unknown order, a prover holding exp
// convinces a verifier that it knows exp, with a proof of constant size: two group elements
// and an integer smaller than the challenge prime, however large exp is. The proof is made
// non-interactive with the Fiat-Shamir heuristic: the challenges are derived by hashing
// (see package hashing) the statement together with the prover's first message.
//
// The functions in this package are generic over the group via the interfaces of package
// group. Proving requires an InvertibleGroup since exponents may be negative; verifying
// only requires a Group.
package poke2

import (
	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/accumulator/big"
	"github.com/privacybydesign/accumulator/group"
	"github.com/privacybydesign/accumulator/hashing"
	"github.com/privacybydesign/accumulator/internal/common"
)

// Params determines how challenges are derived. A prover and verifier must use the same
// Params for a proof to verify.
type Params struct {
	// NewHasher constructs the hash function that challenges are derived with.
	NewHasher func() hashing.Hasher[*big.Int]
	// PrimalityRounds is the number of Miller-Rabin rounds applied to candidates
	// for the challenge prime.
	PrimalityRounds int
}

var DefaultParams = Params{
	NewHasher:       hashing.NewBlake2b,
	PrimalityRounds: hashing.DefaultPrimalityRounds,
}

var Logger *logrus.Logger = logrus.StandardLogger()

func (p Params) orDefault() Params {
	if p.NewHasher == nil {
		p.NewHasher = DefaultParams.NewHasher
	}
	if p.PrimalityRounds == 0 {
		p.PrimalityRounds = DefaultParams.PrimalityRounds
	}
	return p
}

// Challenges returns the challenge prime l and the challenge scalar alpha of the proof
// with first message z, for the statement result = base^exp.
func Challenges[E any](p Params, base, result, z E) (l, alpha *big.Int) {
	p = p.orDefault()
	l = hashing.HashToPrimeRounds(p.NewHasher, p.PrimalityRounds, base, result, z)
	alpha = hashing.Hash(p.NewHasher, base, result, z, l)
	return
}

// Prove computes a proof that the prover knows exp such that result = base^exp in g,
// using DefaultParams. It does not check that result = base^exp; if that relation does
// not hold the proof will not verify.
func Prove[E any](g group.InvertibleGroup[E], base E, exp *big.Int, result E) *Proof[E] {
	return ProveParams(DefaultParams, g, base, exp, result)
}

// ProveParams is Prove with the specified Params.
func ProveParams[E any](p Params, g group.InvertibleGroup[E], base E, exp *big.Int, result E) *Proof[E] {
	z := g.ExpSigned(g.BaseElem(), exp)
	l, alpha := Challenges(p, base, result, z)

	// exp = q*l + r with 0 <= r < l
	q, r := common.FloorDivMod(exp, l)
	gAlpha := g.Op(base, g.Exp(g.BaseElem(), alpha))

	Logger.Tracef("poke2: proving with %d bit challenge prime", l.BitLen())
	return &Proof[E]{
		Z: z,
		Q: g.ExpSigned(gAlpha, q),
		R: r,
	}
}

// Verify reports whether proof proves knowledge of an exponent mapping base to result in g,
// using DefaultParams.
func Verify[E any](g group.Group[E], base, result E, proof *Proof[E]) bool {
	return VerifyParams(DefaultParams, g, base, result, proof)
}

// VerifyParams is Verify with the specified Params.
func VerifyParams[E any](p Params, g group.Group[E], base, result E, proof *Proof[E]) bool {
	if proof == nil || proof.R == nil || isNil(proof.Z) || isNil(proof.Q) {
		return false
	}
	l, alpha := Challenges(p, base, result, proof.Z)
	if proof.R.Sign() < 0 || proof.R.Cmp(l) >= 0 {
		return false
	}

	// Q^l * (base * g^alpha)^r == result * z^alpha
	gAlpha := g.Op(base, g.Exp(g.BaseElem(), alpha))
	lhs := g.Op(g.Exp(proof.Q, l), g.Exp(gAlpha, proof.R))
	rhs := g.Op(result, g.Exp(proof.Z, alpha))
	return g.Equal(lhs, rhs)
}
