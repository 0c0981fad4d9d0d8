package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-errors/errors"

	"github.com/privacybydesign/accumulator"
	"github.com/privacybydesign/accumulator/group"
	"github.com/privacybydesign/accumulator/internal/common"
	"github.com/privacybydesign/accumulator/poke2"
)

// config is the contents of a group file: a group together with the parameters of the
// proofs made in it.
type config struct {
	group  *group.QrGroup
	system accumulator.SystemParameters
	params poke2.Params
}

// configTOML is the representation of a config TOML compatible
type configTOML struct {
	Group           *group.QrGroupTOML
	Hash            string
	PrimalityRounds int
}

func (c *config) TOML() interface{} {
	return &configTOML{
		Group:           c.group.TOML().(*group.QrGroupTOML),
		Hash:            c.system.Hash,
		PrimalityRounds: c.system.PrimalityRounds,
	}
}

func (c *config) TOMLValue() interface{} {
	return &configTOML{}
}

func (c *config) FromTOML(i interface{}) error {
	ct, ok := i.(*configTOML)
	if !ok {
		return errors.New("not a config TOML value")
	}
	if ct.Group == nil {
		return errors.New("group file contains no group")
	}
	grp := new(group.QrGroup)
	if err := grp.FromTOML(ct.Group); err != nil {
		return err
	}
	system := accumulator.SystemParameters{
		ModulusBits:     grp.N.BitLen(),
		PrimalityRounds: ct.PrimalityRounds,
		Hash:            ct.Hash,
	}
	params, err := system.Params()
	if err != nil {
		return err
	}
	c.group, c.system, c.params = grp, system, params
	return nil
}

func saveConfig(path string, c *config) error {
	fd, err := os.Create(path)
	if err != nil {
		return errors.WrapPrefix(err, "failed to create group file", 0)
	}
	if err = toml.NewEncoder(fd).Encode(c.TOML()); err != nil {
		common.Close(fd)
		return errors.WrapPrefix(err, "failed to write group file", 0)
	}
	if err = fd.Close(); err != nil {
		return errors.WrapPrefix(err, "failed to write group file", 0)
	}
	return nil
}

func loadConfig(path string) (*config, error) {
	c := new(config)
	value := c.TOMLValue()
	if _, err := toml.DecodeFile(path, value); err != nil {
		return nil, errors.WrapPrefix(err, "failed to read group file", 0)
	}
	if err := c.FromTOML(value); err != nil {
		return nil, errors.WrapPrefix(err, "invalid group file "+path, 0)
	}
	return c, nil
}
