package logger

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	FlagVerboseCount int  // -V, -VV
	FlagQuiet        bool // --quiet/-q
	FlagSilent       bool // --silent/-s
	FlagJSON         bool // --json-logs, for CI
)

func ConfigureLoggerFromFlags() {
	var w io.Writer = os.Stdout
	level := "info"
	switch {
	case FlagSilent:
		level = "error"
		w = io.Discard
	case FlagQuiet:
		level = "error"
	case FlagVerboseCount > 0:
		level = "debug"
	}

	Configure(Options{
		Level: level,
		JSON:  FlagJSON,
		Color: !FlagJSON && !color.NoColor,
		Out:   w,
	})
}
