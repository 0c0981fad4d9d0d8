package accumulator

import (
	"context"
	"sort"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/accumulator/group"
	"github.com/privacybydesign/accumulator/hashing"
	"github.com/privacybydesign/accumulator/poke2"
)

// SystemParameters holds the parameters of a group and of the proofs made in it.
type SystemParameters struct {
	ModulusBits     int    // size of the RSA modulus
	PrimalityRounds int    // Miller-Rabin rounds for challenge primes
	Hash            string // multihash name of the challenge hash function
}

// DefaultSystemParameters holds per modulus length the default parameters as are
// currently in use at the moment. This might change in the future.
var DefaultSystemParameters = map[int]*SystemParameters{
	1024: {
		ModulusBits:     1024,
		PrimalityRounds: 32,
		Hash:            "blake2b-256",
	},
	2048: {
		ModulusBits:     2048,
		PrimalityRounds: 40,
		Hash:            "blake2b-256",
	},
	4096: {
		ModulusBits:     4096,
		PrimalityRounds: 64,
		Hash:            "blake2b-512",
	},
}

// getAvailableModulusLengths returns the modulus lengths for the provided map of system
// parameters.
func getAvailableModulusLengths(sysParamsMap map[int]*SystemParameters) []int {
	lengths := make([]int, 0, len(sysParamsMap))
	for k := range sysParamsMap {
		lengths = append(lengths, k)
	}
	sort.Ints(lengths)
	return lengths
}

// DefaultModulusLengths is a slice of integers holding the modulus lengths for which
// system parameters are available.
var DefaultModulusLengths = getAvailableModulusLengths(DefaultSystemParameters)

// Params returns the proof parameters corresponding to s.
func (s *SystemParameters) Params() (poke2.Params, error) {
	if s.PrimalityRounds < 1 {
		return poke2.Params{}, errors.Errorf("invalid number of primality rounds %d", s.PrimalityRounds)
	}
	newHasher, err := hashing.ByName(s.Hash)
	if err != nil {
		return poke2.Params{}, err
	}
	return poke2.Params{NewHasher: newHasher, PrimalityRounds: s.PrimalityRounds}, nil
}

// Setup generates a new group with a modulus of the specified length along with the proof
// parameters that DefaultSystemParameters specifies for it.
func Setup(ctx context.Context, modulusBits int) (*group.QrGroup, poke2.Params, error) {
	s, ok := DefaultSystemParameters[modulusBits]
	if !ok {
		return nil, poke2.Params{}, errors.Errorf("no system parameters for %d bit modulus, available: %v",
			modulusBits, DefaultModulusLengths)
	}
	return SetupParams(ctx, s)
}

// SetupParams generates a new group and proof parameters according to s.
func SetupParams(ctx context.Context, s *SystemParameters) (*group.QrGroup, poke2.Params, error) {
	params, err := s.Params()
	if err != nil {
		return nil, poke2.Params{}, err
	}
	Logger.Infof("generating %d bit group", s.ModulusBits)
	grp, err := group.GenerateQrGroup(ctx, s.ModulusBits)
	if err != nil {
		return nil, poke2.Params{}, err
	}
	return grp, params, nil
}
