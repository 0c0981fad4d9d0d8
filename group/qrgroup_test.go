package group

import (
	"bytes"
	"context"
	"crypto/rand"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/privacybydesign/accumulator/big"
)

func init() {
	Logger.SetLevel(logrus.FatalLevel)
}

// 1099511628443 * 1099512628427, both safe primes
var toyModulus, _ = new(big.Int).SetString("1208926920575413943549161", 10)

func toyGroup(t *testing.T) *QrGroup {
	g, err := NewQrGroup(toyModulus, big.NewInt(4))
	require.NoError(t, err)
	return g
}

func randomExponent(t *testing.T, bits uint) *big.Int {
	max := new(big.Int).Lsh(big.NewInt(1), bits)
	e, err := big.RandInt(rand.Reader, max)
	require.NoError(t, err)
	return e
}

func TestNewQrGroupValidation(t *testing.T) {
	for _, c := range []struct{ n, g int64 }{
		{2, 1},
		{1, 1},
		{15, 0},  // generator too small
		{15, 15}, // generator too large
		{15, 16},
		{15, 6},  // not coprime
		{16, 3},  // even modulus
		{-15, 4}, // negative modulus
	} {
		_, err := NewQrGroup(big.NewInt(c.n), big.NewInt(c.g))
		require.Error(t, err, "n=%d g=%d", c.n, c.g)
	}

	_, err := NewQrGroup(nil, big.NewInt(4))
	require.Error(t, err)

	_, err = NewQrGroup(big.NewInt(15), big.NewInt(4))
	require.NoError(t, err)
}

func TestAxioms(t *testing.T) {
	g := toyGroup(t)
	one := big.NewInt(1)

	require.True(t, g.Equal(one, g.Exp(g.BaseElem(), big.NewInt(0))))
	require.True(t, g.Equal(one, g.Exp(big.NewInt(12345), big.NewInt(0))))

	for i := 0; i < 20; i++ {
		a, b := randomExponent(t, 64), randomExponent(t, 64)
		x, y, z := g.Exp(g.BaseElem(), a), g.Exp(g.BaseElem(), b), g.Elem(randomExponent(t, 100))

		// associativity
		require.True(t, g.Equal(g.Op(g.Op(x, y), z), g.Op(x, g.Op(y, z))))
		// exponent additivity
		sum := new(big.Int).Add(a, b)
		require.True(t, g.Equal(g.Exp(g.BaseElem(), sum), g.Op(x, y)))
		require.True(t, g.Equal(g.Exp(z, sum), g.Op(g.Exp(z, a), g.Exp(z, b))))
	}
}

func TestExpSigned(t *testing.T) {
	g := toyGroup(t)
	one := big.NewInt(1)

	for i := 0; i < 20; i++ {
		k := randomExponent(t, 80)
		neg := new(big.Int).Neg(k)
		require.True(t, g.Equal(one, g.Op(g.ExpSigned(g.BaseElem(), neg), g.Exp(g.BaseElem(), k))))
		require.True(t, g.Equal(g.Exp(g.BaseElem(), k), g.ExpSigned(g.BaseElem(), k)))
	}

	// 2^-5 * 2^5 = 1
	two := big.NewInt(2)
	require.True(t, g.Equal(one, g.Op(g.ExpSigned(two, big.NewInt(-5)), g.Exp(two, big.NewInt(5)))))
}

func TestExpSignedNotInvertible(t *testing.T) {
	g := toyGroup(t)
	require.Panics(t, func() {
		g.ExpSigned(big.NewInt(1099511628443), big.NewInt(-1))
	})
}

func TestExpNegativePanics(t *testing.T) {
	g := toyGroup(t)
	require.Panics(t, func() {
		g.Exp(g.BaseElem(), big.NewInt(-1))
	})
}

func TestTableMatchesExp(t *testing.T) {
	g := toyGroup(t)
	for _, bits := range []uint{1, 8, 32, 64, 79} {
		for i := 0; i < 10; i++ {
			e := randomExponent(t, bits)
			expected := new(big.Int).Exp(g.G, e, g.N)
			require.Zero(t, expected.Cmp(g.Exp(g.BaseElem(), e)), "exponent %v", e)
		}
	}

	// longer than the modulus
	e := randomExponent(t, 200)
	require.Zero(t, new(big.Int).Exp(g.G, e, g.N).Cmp(g.Exp(g.BaseElem(), e)))
}

func TestBaseElemIsCopy(t *testing.T) {
	g := toyGroup(t)
	g.BaseElem().SetInt64(9)
	require.Equal(t, int64(4), g.G.Int64())
}

func TestElemContains(t *testing.T) {
	g := toyGroup(t)
	require.Zero(t, g.Elem(big.NewInt(-1)).Cmp(new(big.Int).Sub(g.N, big.NewInt(1))))
	require.Zero(t, g.Elem(new(big.Int).Add(g.N, big.NewInt(3))).Cmp(big.NewInt(3)))

	require.True(t, g.Contains(big.NewInt(4)))
	require.False(t, g.Contains(big.NewInt(0)))
	require.False(t, g.Contains(g.N))
	require.False(t, g.Contains(big.NewInt(1099512628427)))
	require.False(t, g.Contains(nil))
}

func TestTOML(t *testing.T) {
	g := toyGroup(t)

	var buf bytes.Buffer
	require.NoError(t, toml.NewEncoder(&buf).Encode(g.TOML()))

	g2 := new(QrGroup)
	value := g2.TOMLValue()
	_, err := toml.Decode(buf.String(), value)
	require.NoError(t, err)
	require.NoError(t, g2.FromTOML(value))

	require.Zero(t, g.N.Cmp(g2.N))
	require.Zero(t, g.G.Cmp(g2.G))
	e := randomExponent(t, 64)
	require.True(t, g.Equal(g.Exp(g.BaseElem(), e), g2.Exp(g2.BaseElem(), e)))
}

func TestFromTOMLInvalid(t *testing.T) {
	g := new(QrGroup)
	require.Error(t, g.FromTOML(&QrGroupTOML{Modulus: "zz", Generator: "4"}))
	require.Error(t, g.FromTOML(&QrGroupTOML{Modulus: "10", Generator: "3"}))
	require.Error(t, g.FromTOML(&QrGroupTOML{Modulus: "f", Generator: ""}))
	require.Error(t, g.FromTOML("not a group"))
}

func TestGenerateQrGroup(t *testing.T) {
	g, err := GenerateQrGroup(context.Background(), 128)
	require.NoError(t, err)
	require.GreaterOrEqual(t, g.N.BitLen(), 127)
	require.True(t, g.Contains(g.G))

	_, err = GenerateQrGroup(context.Background(), 8)
	require.Error(t, err)
}
