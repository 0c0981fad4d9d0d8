package safeprime

import (
	"context"
	"testing"

	"github.com/privacybydesign/accumulator/big"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	x, err := Generate(context.Background(), 512)

	require.NoError(t, err)
	require.NotNil(t, x)
	require.Equal(t, 512, x.BitLen())
	require.True(t, x.ProbablyPrime(100), "Generated number was not prime")

	y := new(big.Int).Sub(x, big.NewInt(1))
	y.Div(y, big.NewInt(2))

	require.True(t, y.ProbablyPrime(100), "Generated number was not a safe prime")
}

func TestGenerateSmall(t *testing.T) {
	x, err := Generate(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, int64(7), x.Int64())

	_, err = Generate(context.Background(), 2)
	require.Error(t, err)
}

func TestGenerateConcurrent(t *testing.T) {
	primes, err := GenerateConcurrent(context.Background(), 64, 3)
	require.NoError(t, err)
	require.Len(t, primes, 3)
	for i, p := range primes {
		require.True(t, ProbablySafePrime(p, 40))
		require.Equal(t, 64, p.BitLen())
		for j := 0; j < i; j++ {
			require.NotZero(t, p.Cmp(primes[j]))
		}
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// the context is checked before the first candidate
	_, err := Generate(ctx, 4096)
	require.ErrorIs(t, err, context.Canceled)
}

func TestProbablySafePrime(t *testing.T) {
	require.True(t, ProbablySafePrime(big.NewInt(26903), 40))
	require.False(t, ProbablySafePrime(big.NewInt(10009), 40)) // prime, not safe
	require.False(t, ProbablySafePrime(big.NewInt(20015), 40)) // not prime
	require.False(t, ProbablySafePrime(big.NewInt(2), 40))
}
