// Package big contains a mostly API-compatible "math/big".Int with a canonical,
// sign-aware binary form, used both for hashing into Fiat-Shamir challenges and
// for (un)marshaling proofs.
package big

import (
	"bytes"
	cryptorand "crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/accumulator/cbor"
)

// Int is an API-compatible "math/big".Int. Contrary to the exponents of
// credential schemes, exponents and quotients in hidden order groups are
// routinely negative, so all encodings below carry the sign.
type Int big.Int

const (
	signPositive byte = 0
	signNegative byte = 1
)

// MarshalBinary returns the canonical encoding of i: a sign byte (0 for
// non-negative, 1 for negative) followed by the big-endian magnitude without
// leading zeroes. Zero encodes as a single 0 byte.
func (i *Int) MarshalBinary() ([]byte, error) {
	mag := i.Go().Bytes()
	out := make([]byte, 1, 1+len(mag))
	if i.Sign() < 0 {
		out[0] = signNegative
	}
	return append(out, mag...), nil
}

// UnmarshalBinary parses the output of MarshalBinary. Non-canonical encodings
// (leading zero bytes, negative zero, unknown sign bytes) are rejected, so
// that every integer has exactly one encoding.
func (i *Int) UnmarshalBinary(bts []byte) error {
	if len(bts) == 0 {
		return errors.New("empty integer encoding")
	}
	sign, mag := bts[0], bts[1:]
	if sign != signPositive && sign != signNegative {
		return errors.Errorf("invalid integer sign byte %d", sign)
	}
	if len(mag) > 0 && mag[0] == 0 {
		return errors.New("integer encoding has leading zeroes")
	}
	if sign == signNegative && len(mag) == 0 {
		return errors.New("integer encoding of negative zero")
	}
	i.Go().SetBytes(mag)
	if sign == signNegative {
		i.Go().Neg(i.Go())
	}
	return nil
}

// MarshalCBOR implements cbor.Marshaler, encoding i as a CBOR byte string
// containing MarshalBinary's output.
func (i *Int) MarshalCBOR() ([]byte, error) {
	bts, err := i.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(bts)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (i *Int) UnmarshalCBOR(data []byte) error {
	var bts []byte
	if err := cbor.Unmarshal(data, &bts); err != nil {
		return err
	}
	return i.UnmarshalBinary(bts)
}

// MarshalText implements encoding.TextMarshaler, returning the base64-encoding
// of the magnitude of i, prefixed with '-' if i is negative.
func (i *Int) MarshalText() ([]byte, error) {
	mag := i.Go().Bytes()
	enc := make([]byte, base64.StdEncoding.EncodedLen(len(mag)))
	base64.StdEncoding.Encode(enc, mag)
	if i.Sign() < 0 {
		enc = append([]byte{'-'}, enc...)
	}
	return enc, nil
}

// UnmarshalText implements encoding.TextUnmarshaler, parsing the output of MarshalText.
func (i *Int) UnmarshalText(text []byte) error {
	neg := bytes.HasPrefix(text, []byte{'-'})
	if neg {
		text = text[1:]
	}
	bts := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(bts, text)
	if err != nil {
		return errors.WrapPrefix(err, "failed to decode integer", 0)
	}
	i.Go().SetBytes(bts[:n])
	if neg {
		i.Go().Neg(i.Go())
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. If the input is quoted it is parsed
// by UnmarshalText. Otherwise it attempts to unmarshal the input as a JSON
// base 10 big integer.
func (i *Int) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty JSON integer")
	}
	if b[0] != '"' { // Not a JSON string, try to decode an ordinarily base-10 encoded "math.big".Int
		return json.Unmarshal(b, i.Go())
	}
	if len(b) < 2 || b[len(b)-1] != '"' {
		return errors.New("unterminated JSON string")
	}
	return i.UnmarshalText(b[1 : len(b)-1])
}

// RandInt wraps "crypto/rand".Int:
// returns a uniform random value in [0, max). It panics if max <= 0.
func RandInt(rnd io.Reader, max *Int) (*Int, error) {
	i, err := cryptorand.Int(rnd, max.Go())
	return Convert(i), err
}

// Convert from a "math/big".Int
func Convert(x *big.Int) *Int {
	return (*Int)(x)
}

// Convert to a "math/big".Int
func (i *Int) Go() *big.Int {
	return (*big.Int)(i)
}

// "math/big".Int API
// We are liberal with using the conversion functions above; these are inlined by the compiler.

func NewInt(x int64) *Int { return Convert(big.NewInt(x)) }

func (i *Int) Format(s fmt.State, ch rune)   { i.Go().Format(s, ch) }
func (i *Int) Bit(j int) uint                { return i.Go().Bit(j) }
func (i *Int) Bytes() []byte                 { return i.Go().Bytes() }
func (i *Int) BitLen() int                   { return i.Go().BitLen() }
func (i *Int) Int64() int64                  { return i.Go().Int64() }
func (i *Int) Uint64() uint64                { return i.Go().Uint64() }
func (i *Int) IsInt64() bool                 { return i.Go().IsInt64() }
func (i *Int) Sign() int                     { return i.Go().Sign() }
func (i *Int) Cmp(y *Int) int                { return i.Go().Cmp(y.Go()) }
func (i *Int) CmpAbs(y *Int) int             { return i.Go().CmpAbs(y.Go()) }
func (i *Int) ProbablyPrime(n int) bool      { return i.Go().ProbablyPrime(n) }
func (i *Int) String() string                { return i.Go().String() }
func (i *Int) Text(base int) string          { return i.Go().Text(base) }
func (i *Int) SetInt64(x int64) *Int         { return Convert(i.Go().SetInt64(x)) }
func (i *Int) SetUint64(x uint64) *Int       { return Convert(i.Go().SetUint64(x)) }
func (i *Int) Set(x *Int) *Int               { return Convert(i.Go().Set(x.Go())) }
func (i *Int) Abs(x *Int) *Int               { return Convert(i.Go().Abs(x.Go())) }
func (i *Int) Neg(x *Int) *Int               { return Convert(i.Go().Neg(x.Go())) }
func (i *Int) Add(x, y *Int) *Int            { return Convert(i.Go().Add(x.Go(), y.Go())) }
func (i *Int) Sub(x, y *Int) *Int            { return Convert(i.Go().Sub(x.Go(), y.Go())) }
func (i *Int) Mul(x, y *Int) *Int            { return Convert(i.Go().Mul(x.Go(), y.Go())) }
func (i *Int) Quo(x, y *Int) *Int            { return Convert(i.Go().Quo(x.Go(), y.Go())) }
func (i *Int) Rem(x, y *Int) *Int            { return Convert(i.Go().Rem(x.Go(), y.Go())) }
func (i *Int) Div(x, y *Int) *Int            { return Convert(i.Go().Div(x.Go(), y.Go())) }
func (i *Int) Mod(x, y *Int) *Int            { return Convert(i.Go().Mod(x.Go(), y.Go())) }
func (i *Int) SetBytes(buf []byte) *Int      { return Convert(i.Go().SetBytes(buf)) }
func (i *Int) Lsh(x *Int, n uint) *Int       { return Convert(i.Go().Lsh(x.Go(), n)) }
func (i *Int) Rsh(x *Int, n uint) *Int       { return Convert(i.Go().Rsh(x.Go(), n)) }
func (i *Int) SetBit(x *Int, j int, b uint) *Int {
	return Convert(i.Go().SetBit(x.Go(), j, b))
}
func (i *Int) Exp(x, y, m *Int) *Int {
	return Convert(i.Go().Exp(x.Go(), y.Go(), m.Go()))
}
func (i *Int) GCD(x, y, a, b *Int) *Int {
	return Convert(i.Go().GCD(x.Go(), y.Go(), a.Go(), b.Go()))
}
func (i *Int) ModInverse(g, n *Int) *Int {
	if i.Go().ModInverse(g.Go(), n.Go()) == nil {
		return nil
	}
	return i
}
func (i *Int) SetString(s string, base int) (*Int, bool) {
	z, b := i.Go().SetString(s, base)
	return Convert(z), b
}
func (i *Int) DivMod(x, y, m *Int) (*Int, *Int) {
	z, w := i.Go().DivMod(x.Go(), y.Go(), m.Go())
	return Convert(z), Convert(w)
}
func (i *Int) QuoRem(x, y, r *Int) (*Int, *Int) {
	z, w := i.Go().QuoRem(x.Go(), y.Go(), r.Go())
	return Convert(z), Convert(w)
}
