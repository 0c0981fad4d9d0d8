package group

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/bwesterb/go-exptable"
	"github.com/go-errors/errors"

	"github.com/privacybydesign/accumulator/big"
	"github.com/privacybydesign/accumulator/internal/common"
	"github.com/privacybydesign/accumulator/safeprime"
)

// QrGroup represents the multiplicative group modulo n = p*q with generator G. When G is a
// quadratic residue and p, q, (p-1)/2 and (q-1)/2 are all prime, G generates QR_n, whose
// order (p-1)(q-1)/4 is hidden by not knowing p and q.
//
// Elements are integers in [0, N). A QrGroup is immutable and safe for concurrent use.
type QrGroup struct {
	N *big.Int // RSA modulus
	G *big.Int // Generator

	table exptable.Table
}

var _ InvertibleGroup[*big.Int] = (*QrGroup)(nil)

var bigTWO = big.NewInt(2)

// NewQrGroup returns the group modulo n with generator g. The modulus must be odd and larger
// than 2, and the generator must be in [1, n) and coprime to n. The factorization and
// residuosity of the parameters are not checked.
func NewQrGroup(n, g *big.Int) (*QrGroup, error) {
	if n == nil || g == nil {
		return nil, errors.New("group parameters missing")
	}
	if n.Cmp(bigTWO) <= 0 || n.Bit(0) == 0 {
		return nil, errors.New("modulus must be odd and larger than 2")
	}
	if g.Sign() <= 0 || g.Cmp(n) >= 0 {
		return nil, errors.New("generator out of range")
	}
	if !common.Coprime(g, n) {
		return nil, errors.New("generator not coprime to modulus")
	}

	grp := &QrGroup{
		N: new(big.Int).Set(n),
		G: new(big.Int).Set(g),
	}
	grp.table.Compute(grp.G.Go(), grp.N.Go(), 7)
	return grp, nil
}

// GenerateQrGroup generates a modulus of the specified bitsize as the product of two
// distinct safe primes, and a random quadratic residue as generator. The primes are
// discarded.
func GenerateQrGroup(ctx context.Context, bitsize int) (*QrGroup, error) {
	if bitsize < 16 {
		return nil, errors.Errorf("modulus size of %d bits too small", bitsize)
	}
	Logger.Debugf("generating %d bit modulus", bitsize)
	primes, err := safeprime.GenerateConcurrent(ctx, (bitsize+1)/2, 2)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to generate safe primes", 0)
	}
	n := new(big.Int).Mul(primes[0], primes[1])
	g, err := common.RandomQR(rand.Reader, n)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to sample generator", 0)
	}
	Logger.Debugf("generated %d bit modulus", n.BitLen())
	return NewQrGroup(n, g)
}

func (g *QrGroup) BaseElem() *big.Int {
	return new(big.Int).Set(g.G)
}

func (g *QrGroup) Op(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, g.N)
}

func (g *QrGroup) Exp(base, exp *big.Int) *big.Int {
	if exp.Sign() < 0 {
		panic(fmt.Sprintf("negative exponent %v", exp))
	}
	ret := new(big.Int)
	// the table only covers exponents shorter than the modulus
	if exp.Sign() > 0 && exp.BitLen() < g.N.BitLen() && base.Cmp(g.G) == 0 {
		g.table.Exp(ret.Go(), exp.Go())
		return ret
	}
	return ret.Exp(base, exp, g.N)
}

func (g *QrGroup) ExpSigned(base, exp *big.Int) *big.Int {
	if exp.Sign() >= 0 {
		return g.Exp(base, exp)
	}
	ret, err := common.ModPow(base, exp, g.N)
	if err != nil {
		panic(fmt.Sprintf("%v has no inverse modulo N", base))
	}
	return ret
}

func (g *QrGroup) Equal(a, b *big.Int) bool {
	return a.Cmp(b) == 0
}

// Elem lifts x into the group by reducing it modulo N; negative values wrap around.
func (g *QrGroup) Elem(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, g.N)
}

// Contains reports whether x is an invertible element in [1, N).
func (g *QrGroup) Contains(x *big.Int) bool {
	return x != nil && x.Sign() > 0 && x.Cmp(g.N) < 0 && common.Coprime(x, g.N)
}

func (g *QrGroup) String() string {
	return fmt.Sprintf("QrGroup{N: %d bits, G: %x}", g.N.BitLen(), g.G)
}
