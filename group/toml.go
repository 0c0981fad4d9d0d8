package group

import (
	"github.com/go-errors/errors"

	"github.com/privacybydesign/accumulator/big"
)

// QrGroupTOML is the TOML-compatible representation of a QrGroup.
type QrGroupTOML struct {
	Modulus   string
	Generator string
}

// TOML returns a TOML-encodable version of the group.
func (g *QrGroup) TOML() interface{} {
	return &QrGroupTOML{
		Modulus:   g.N.Text(16),
		Generator: g.G.Text(16),
	}
}

// TOMLValue returns an empty TOML-compatible value of the group.
func (g *QrGroup) TOMLValue() interface{} {
	return &QrGroupTOML{}
}

// FromTOML reconstructs and validates the group from its TOML representation.
func (g *QrGroup) FromTOML(i interface{}) error {
	gt, ok := i.(*QrGroupTOML)
	if !ok {
		return errors.New("not a group TOML value")
	}
	n, ok := new(big.Int).SetString(gt.Modulus, 16)
	if !ok {
		return errors.New("invalid group modulus")
	}
	gen, ok := new(big.Int).SetString(gt.Generator, 16)
	if !ok {
		return errors.New("invalid group generator")
	}
	grp, err := NewQrGroup(n, gen)
	if err != nil {
		return errors.WrapPrefix(err, "invalid group", 0)
	}
	*g = *grp
	return nil
}
