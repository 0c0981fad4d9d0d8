package hashing

import (
	"bytes"
	"fmt"
	"hash"

	"github.com/go-errors/errors"
	"github.com/minio/sha256-simd"
	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/blake2b"

	"github.com/privacybydesign/accumulator/big"
)

type (
	// digest finalizes a hash.Hash to its plain digest.
	digest struct{ hash.Hash }

	// integer finalizes a hash.Hash to its digest, read as a big-endian unsigned integer.
	integer struct{ hash.Hash }

	// multihasher buffers its input and hashes it in one go with multihash.Sum.
	multihasher struct {
		code uint64
		buf  bytes.Buffer
	}
)

func (d digest) Finalize() []byte {
	return d.Sum(nil)
}

func (i integer) Finalize() *big.Int {
	return new(big.Int).SetBytes(i.Sum(nil))
}

func newBlake2b256() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err) // only happens for oversized keys
	}
	return h
}

// NewBlake2b returns a BLAKE2b-256 hasher whose output is an unsigned integer below 2^256.
// It is the default hasher for challenges.
func NewBlake2b() Hasher[*big.Int] {
	return integer{newBlake2b256()}
}

// NewBlake2bDigest returns a BLAKE2b-256 hasher with the raw 32 byte digest as output.
func NewBlake2bDigest() Hasher[[]byte] {
	return digest{newBlake2b256()}
}

// NewSha256 returns a SHA-256 hasher whose output is an unsigned integer below 2^256.
func NewSha256() Hasher[*big.Int] {
	return integer{sha256.New()}
}

func (m *multihasher) Write(p []byte) (int, error) {
	return m.buf.Write(p)
}

func (m *multihasher) Finalize() *big.Int {
	mh, err := multihash.Sum(m.buf.Bytes(), m.code, -1)
	if err != nil {
		panic(err) // code was validated by NewMultihash
	}
	decoded, err := multihash.Decode(mh)
	if err != nil {
		panic(err)
	}
	return new(big.Int).SetBytes(decoded.Digest)
}

// challengeHashes are the multihash names of the cryptographic hash functions with at least
// 256 bit digests, which alone may derive challenges.
var challengeHashes = []string{
	"sha2-256", "sha2-512",
	"sha3-256", "sha3-384", "sha3-512",
	"keccak-256", "keccak-384", "keccak-512",
	"blake2b-256", "blake2b-264", "blake2b-272", "blake2b-280", "blake2b-288",
	"blake2b-296", "blake2b-304", "blake2b-312", "blake2b-320", "blake2b-328",
	"blake2b-336", "blake2b-344", "blake2b-352", "blake2b-360", "blake2b-368",
	"blake2b-376", "blake2b-384", "blake2b-392", "blake2b-400", "blake2b-408",
	"blake2b-416", "blake2b-424", "blake2b-432", "blake2b-440", "blake2b-448",
	"blake2b-456", "blake2b-464", "blake2b-472", "blake2b-480", "blake2b-488",
	"blake2b-496", "blake2b-504", "blake2b-512",
}

var challengeCodes = make(map[uint64]bool, len(challengeHashes))

func init() {
	for _, name := range challengeHashes {
		if code, ok := multihash.Names[name]; ok {
			challengeCodes[code] = true
		}
	}
}

// NewMultihash returns a constructor of hashers computing the multihash function with the
// specified code at its default length, outputting the digest as an unsigned integer.
// Only cryptographic hash functions with digests of at least 256 bits are accepted.
func NewMultihash(code uint64) (func() Hasher[*big.Int], error) {
	if !challengeCodes[code] {
		name := multihash.Codes[code]
		if name == "" {
			name = fmt.Sprintf("0x%x", code)
		}
		return nil, errors.Errorf("multihash %s not allowed for challenges", name)
	}
	if _, err := multihash.Sum(nil, code, -1); err != nil {
		return nil, errors.WrapPrefix(err, "unsupported multihash", 0)
	}
	return func() Hasher[*big.Int] {
		return &multihasher{code: code}
	}, nil
}

// ByName returns the hasher constructor of the given multihash name, e.g. "blake2b-256"
// or "sha2-256". For those two names it returns NewBlake2b and NewSha256, which compute the
// same outputs as their multihash counterparts without buffering their input.
func ByName(name string) (func() Hasher[*big.Int], error) {
	switch name {
	case "blake2b-256":
		return NewBlake2b, nil
	case "sha2-256":
		return NewSha256, nil
	}
	code, ok := multihash.Names[name]
	if !ok {
		return nil, errors.Errorf("unknown hash function %q", name)
	}
	return NewMultihash(code)
}
