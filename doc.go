// Package accumulator contains building blocks for RSA accumulators: proofs of knowledge
// of exponents in groups of unknown order, and the hash-to-prime and group machinery they
// rest on.
//
// The subpackages are:
//   - group: the Group and InvertibleGroup interfaces, and QrGroup over an RSA modulus
//   - hashing: the hash abstraction and hash-to-prime
//   - poke2: non-interactive proofs of knowledge of exponent
//   - safeprime: safe prime generation for RSA moduli
//
// This package ties them together with named system parameter sets. A typical session:
//
//	grp, params, err := accumulator.Setup(ctx, 2048)
//	result := grp.ExpSigned(base, exp)
//	proof := poke2.ProveParams[*big.Int](params, grp, base, exp, result)
//	ok := poke2.VerifyParams[*big.Int](params, grp, base, result, proof)
package accumulator
