package common

import (
	"crypto/rand"
	"testing"

	"github.com/privacybydesign/accumulator/big"
	"github.com/stretchr/testify/require"
)

func TestFloorDivMod(t *testing.T) {
	cases := []struct{ x, m, q, r int64 }{
		{20, 7, 2, 6},
		{-20, 7, -3, 1},
		{-21, 7, -3, 0},
		{0, 7, 0, 0},
		{-1, 13, -1, 12},
		{6, 13, 0, 6},
	}
	for _, c := range cases {
		q, r := FloorDivMod(big.NewInt(c.x), big.NewInt(c.m))
		require.Equal(t, c.q, q.Int64(), "quotient of %d / %d", c.x, c.m)
		require.Equal(t, c.r, r.Int64(), "remainder of %d / %d", c.x, c.m)
	}
}

func TestFloorDivModRandom(t *testing.T) {
	bound := new(big.Int).Lsh(big.NewInt(1), 300)
	m, ok := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639747", 10)
	require.True(t, ok)
	for i := 0; i < 100; i++ {
		x, err := big.RandInt(rand.Reader, bound)
		require.NoError(t, err)
		if i%2 == 0 {
			x.Neg(x)
		}
		q, r := FloorDivMod(x, m)
		require.True(t, r.Sign() >= 0)
		require.True(t, r.Cmp(m) < 0)

		recombined := new(big.Int).Mul(q, m)
		recombined.Add(recombined, r)
		require.Zero(t, recombined.Cmp(x))
	}
}

func TestFloorDivModNonPositive(t *testing.T) {
	require.Panics(t, func() { FloorDivMod(big.NewInt(5), big.NewInt(0)) })
	require.Panics(t, func() { FloorDivMod(big.NewInt(5), big.NewInt(-3)) })
}

func TestModInverse(t *testing.T) {
	n := big.NewInt(35)
	inv, ok := ModInverse(big.NewInt(3), n)
	require.True(t, ok)
	require.Equal(t, int64(12), inv.Int64())

	_, ok = ModInverse(big.NewInt(7), n)
	require.False(t, ok)
}

func TestModPow(t *testing.T) {
	n := big.NewInt(35)
	x := big.NewInt(3)

	pos, err := ModPow(x, big.NewInt(5), n)
	require.NoError(t, err)
	neg, err := ModPow(x, big.NewInt(-5), n)
	require.NoError(t, err)
	require.Equal(t, int64(1), new(big.Int).Mul(pos, neg).Mod(new(big.Int).Mul(pos, neg), n).Int64())

	_, err = ModPow(big.NewInt(5), big.NewInt(-1), n)
	require.Equal(t, ErrNoModInverse, err)
}

func TestRandomQR(t *testing.T) {
	n := big.NewInt(1019 * 1187)
	for i := 0; i < 20; i++ {
		qr, err := RandomQR(rand.Reader, n)
		require.NoError(t, err)
		require.True(t, qr.Sign() > 0)
		require.True(t, qr.Cmp(n) < 0)
		require.True(t, Coprime(qr, n))
		// Euler's criterion modulo both prime factors
		require.Equal(t, int64(1), new(big.Int).Exp(qr, big.NewInt(509), big.NewInt(1019)).Int64())
		require.Equal(t, int64(1), new(big.Int).Exp(qr, big.NewInt(593), big.NewInt(1187)).Int64())
	}
}
