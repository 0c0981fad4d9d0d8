package accumulator

import (
	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/accumulator/group"
	"github.com/privacybydesign/accumulator/hashing"
	"github.com/privacybydesign/accumulator/poke2"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.StandardLogger()
	group.Logger = Logger
	hashing.Logger = Logger
	poke2.Logger = Logger
}
