package poke2

import (
	"reflect"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/accumulator/big"
	"github.com/privacybydesign/accumulator/cbor"
	"github.com/privacybydesign/accumulator/group"
)

type (
	// Proof is a PoKE2 proof. It is meaningless without the base and result it was
	// computed for.
	Proof[E any] struct {
		Z E        // generator to the power exp
		Q E        // (base * generator^alpha) to the power exp / l
		R *big.Int // exp mod l
	}

	// proofFields has the fields of Proof but not its methods, so that encoding it
	// does not recurse into MarshalBinary.
	proofFields[E any] Proof[E]
)

// MarshalBinary implements encoding.BinaryMarshaler, encoding the proof as a CBOR map.
// It fails if E has no CBOR encoding.
func (p *Proof[E]) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*proofFields[E])(p))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *Proof[E]) UnmarshalBinary(data []byte) error {
	var decoded proofFields[E]
	if err := cbor.Unmarshal(data, &decoded); err != nil {
		return errors.WrapPrefix(err, "failed to decode proof", 0)
	}
	if decoded.R == nil || isNil(decoded.Z) || isNil(decoded.Q) {
		return errors.New("incomplete proof")
	}
	*p = Proof[E](decoded)
	return nil
}

// Equal reports whether p and o consist of the same elements of g.
func (p *Proof[E]) Equal(g group.Group[E], o *Proof[E]) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.R == nil || o.R == nil {
		return p.R == o.R && g.Equal(p.Z, o.Z) && g.Equal(p.Q, o.Q)
	}
	return p.R.Cmp(o.R) == 0 && g.Equal(p.Z, o.Z) && g.Equal(p.Q, o.Q)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
