// Command poke generates groups of unknown order, and proves and verifies knowledge of
// exponents in them.
package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"github.com/privacybydesign/accumulator"
	"github.com/privacybydesign/accumulator/big"
	"github.com/privacybydesign/accumulator/hashing"
	"github.com/privacybydesign/accumulator/poke2"
)

// Automatically set through -ldflags
// Example: go install -ldflags "-X main.version=`git describe --tags`"
var version = "master"

var output io.Writer = os.Stdout

var (
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log debug output",
	}
	groupFlag = &cli.StringFlag{
		Name:  "group",
		Usage: "Group file to read",
		Value: "group.toml",
	}
	baseFlag = &cli.StringFlag{
		Name:  "base",
		Usage: "Base of the exponentiation, in decimal (default: the generator of the group)",
	}
)

var setupCmd = &cli.Command{
	Name:  "setup",
	Usage: "generate a group of unknown order and write it to a group file",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "bits",
			Usage: "Size of the modulus",
			Value: 2048,
		},
		&cli.StringFlag{
			Name:  "hash",
			Usage: "Multihash name of the challenge hash function (default: per modulus size)",
		},
		&cli.IntFlag{
			Name:  "rounds",
			Usage: "Miller-Rabin rounds for challenge primes (default: per modulus size)",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Group file to write",
			Value: "group.toml",
		},
	},
	Action: setup,
}

var proveCmd = &cli.Command{
	Name:  "prove",
	Usage: "compute base^exp and prove knowledge of exp",
	Flags: []cli.Flag{
		groupFlag,
		baseFlag,
		&cli.StringFlag{
			Name:     "exp",
			Usage:    "Exponent, in decimal; may be negative",
			Required: true,
		},
	},
	Action: prove,
}

var verifyCmd = &cli.Command{
	Name:  "verify",
	Usage: "verify a proof of knowledge of an exponent mapping base to result",
	Flags: []cli.Flag{
		groupFlag,
		baseFlag,
		&cli.StringFlag{
			Name:     "result",
			Usage:    "Result of the exponentiation, in decimal",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "proof",
			Usage:    "Proof as output by prove",
			Required: true,
		},
	},
	Action: verify,
}

// CLI returns the poke app
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = "poke"
	app.Version = version
	app.Usage = "proofs of knowledge of exponent in groups of unknown order"
	app.Writer = output
	app.ExitErrHandler = func(*cli.Context, error) {
		// main decides on the exit code
	}
	app.Flags = []cli.Flag{verboseFlag}
	app.Before = func(c *cli.Context) error {
		if c.Bool(verboseFlag.Name) {
			accumulator.Logger.SetLevel(logrus.DebugLevel)
		}
		return nil
	}
	app.Commands = []*cli.Command{setupCmd, proveCmd, verifyCmd}
	return app
}

func main() {
	if err := CLI().Run(os.Args); err != nil {
		if exit, ok := err.(cli.ExitCoder); ok {
			if msg := exit.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(exit.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) error {
	bits := c.Int("bits")
	system := accumulator.SystemParameters{
		ModulusBits:     bits,
		PrimalityRounds: hashing.DefaultPrimalityRounds,
		Hash:            "blake2b-256",
	}
	if s, ok := accumulator.DefaultSystemParameters[bits]; ok {
		system = *s
	}
	if c.IsSet("hash") {
		system.Hash = c.String("hash")
	}
	if c.IsSet("rounds") {
		system.PrimalityRounds = c.Int("rounds")
	}

	grp, params, err := accumulator.SetupParams(c.Context, &system)
	if err != nil {
		return err
	}
	out := c.String("out")
	if err = saveConfig(out, &config{group: grp, system: system, params: params}); err != nil {
		return err
	}
	fmt.Fprintf(output, "wrote %d bit group to %s\n", grp.N.BitLen(), out)
	return nil
}

func prove(c *cli.Context) error {
	conf, err := loadConfig(c.String(groupFlag.Name))
	if err != nil {
		return err
	}
	base, err := baseElem(c, conf)
	if err != nil {
		return err
	}
	exp, err := parseInt("exponent", c.String("exp"))
	if err != nil {
		return err
	}

	result := conf.group.ExpSigned(base, exp)
	proof := poke2.ProveParams[*big.Int](conf.params, conf.group, base, exp, result)
	bts, err := proof.MarshalBinary()
	if err != nil {
		return errors.WrapPrefix(err, "failed to encode proof", 0)
	}
	fmt.Fprintf(output, "result: %s\n", result)
	fmt.Fprintf(output, "proof: %s\n", base64.StdEncoding.EncodeToString(bts))
	return nil
}

func verify(c *cli.Context) error {
	conf, err := loadConfig(c.String(groupFlag.Name))
	if err != nil {
		return err
	}
	base, err := baseElem(c, conf)
	if err != nil {
		return err
	}
	result, err := parseInt("result", c.String("result"))
	if err != nil {
		return err
	}
	bts, err := base64.StdEncoding.DecodeString(c.String("proof"))
	if err != nil {
		return errors.WrapPrefix(err, "failed to decode proof", 0)
	}
	proof := new(poke2.Proof[*big.Int])
	if err = proof.UnmarshalBinary(bts); err != nil {
		return err
	}

	if !conf.group.Contains(result) || !conf.group.Contains(proof.Z) || !conf.group.Contains(proof.Q) ||
		!poke2.VerifyParams[*big.Int](conf.params, conf.group, base, result, proof) {
		fmt.Fprintln(output, "invalid")
		return cli.Exit("", 1)
	}
	fmt.Fprintln(output, "valid")
	return nil
}

func baseElem(c *cli.Context, conf *config) (*big.Int, error) {
	if !c.IsSet(baseFlag.Name) {
		return conf.group.BaseElem(), nil
	}
	base, err := parseInt("base", c.String(baseFlag.Name))
	if err != nil {
		return nil, err
	}
	if !conf.group.Contains(base) {
		return nil, errors.Errorf("base %s is not an invertible group element", base)
	}
	return base, nil
}

func parseInt(name, s string) (*big.Int, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid %s %q", name, s)
	}
	return i, nil
}
