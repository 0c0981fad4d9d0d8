package accumulator

import (
	"context"
	"testing"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/privacybydesign/accumulator/big"
	"github.com/privacybydesign/accumulator/poke2"
)

func init() {
	Logger.SetLevel(logrus.FatalLevel)
}

func TestDefaultModulusLengths(t *testing.T) {
	require.Equal(t, []int{1024, 2048, 4096}, DefaultModulusLengths)
	for bits, s := range DefaultSystemParameters {
		require.Equal(t, bits, s.ModulusBits)
		p, err := s.Params()
		require.NoError(t, err, "%d", bits)
		require.Equal(t, s.PrimalityRounds, p.PrimalityRounds)
		require.NotNil(t, p.NewHasher)
	}
}

func TestParamsInvalid(t *testing.T) {
	_, err := (&SystemParameters{ModulusBits: 1024, PrimalityRounds: 0, Hash: "blake2b-256"}).Params()
	require.Error(t, err)
	_, err = (&SystemParameters{ModulusBits: 1024, PrimalityRounds: 10, Hash: "nonexistent"}).Params()
	require.Error(t, err)
}

func TestSetupUnknownLength(t *testing.T) {
	_, _, err := Setup(context.Background(), 1000)
	require.Error(t, err)
}

func TestSetupAndProve(t *testing.T) {
	grp, params, err := SetupParams(context.Background(), &SystemParameters{
		ModulusBits:     256,
		PrimalityRounds: 16,
		Hash:            "sha3-256",
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, grp.N.BitLen(), 255)

	base := grp.BaseElem()
	exp, _ := new(big.Int).SetString("-98765432109876543210987654321", 10)
	result := grp.ExpSigned(base, exp)
	proof := poke2.ProveParams[*big.Int](params, grp, base, exp, result)
	require.True(t, poke2.VerifyParams[*big.Int](params, grp, base, result, proof))
	require.False(t, poke2.Verify[*big.Int](grp, base, result, proof))
}

func TestSetupCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Setup(ctx, 4096)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}
