// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// led-bargraph shows a value against a range on an Adafruit bi-color 24-bar
// bargraph.
//
// Usage:
//
//	led-bargraph [flags] clear
//	led-bargraph [flags] set <value> <range>
//	led-bargraph [flags] show
//	led-bargraph [flags] snapshot <file.png>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/ledbargraph/bargraph"
	"github.com/GermanBionicSystems/ledbargraph/ht16k33"
	"github.com/GermanBionicSystems/ledbargraph/ht16k33/ht16k33sim"
	"github.com/GermanBionicSystems/ledbargraph/snapshot"
)

const usage = `Usage:
  led-bargraph [flags] clear              Clear the display.
  led-bargraph [flags] set <value> <range> Display the value against the range.
  led-bargraph [flags] show               Show on-screen the current display.
  led-bargraph [flags] snapshot <file>    Save the current display as PNG.

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("led-bargraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	def := defaultConfig()
	configPath := fs.String("config", "", "path to a YAML configuration file")
	fs.String("i2c-bus", def.I2CBus, "I²C bus name or number, empty for the first one")
	fs.String("i2c-address", fmt.Sprintf("%#x", def.I2CAddress), "I²C address of the HT16K33")
	fs.Int("steps", def.Steps, "resolution of the bargraph")
	fs.Uint("brightness", uint(def.Brightness), "display brightness, 0 to 15")
	fs.Bool("show", def.Show, "show on-screen the display after clear or set")
	fs.Bool("sim", def.Sim, "use a simulated device instead of the I²C bus")
	fs.String("log-level", def.LogLevel, "log level: trace, debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg := def
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			fmt.Fprintf(stderr, "led-bargraph: %v\n", err)
			return 2
		}
	}
	if err := applyFlags(fs, &cfg); err != nil {
		fmt.Fprintf(stderr, "led-bargraph: %v\n", err)
		return 2
	}

	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "led-bargraph: %v\n", err)
		return 2
	}
	logger.Debug().Interface("config", cfg).Msg("starting")

	if err := execute(fs.Args(), cfg, stdout, logger); err != nil {
		logger.Error().Err(err).Msg("failed")
		var lre *bargraph.LogicalRangeError
		if errors.Is(err, errUsage) || errors.As(err, &lre) {
			fs.Usage()
			return 2
		}
		return 1
	}
	return 0
}

var errUsage = errors.New("invalid command line")

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: noColor}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func execute(args []string, cfg config, stdout io.Writer, logger zerolog.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, args := args[0], args[1:]
	var value, rng int
	switch cmd {
	case "clear", "show":
		if len(args) != 0 {
			return fmt.Errorf("%w: %s takes no argument", errUsage, cmd)
		}
	case "set":
		if len(args) != 2 {
			return fmt.Errorf("%w: set takes <value> <range>", errUsage)
		}
		var err error
		if value, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("%w: value: %v", errUsage, err)
		}
		if rng, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("%w: range: %v", errUsage, err)
		}
	case "snapshot":
		if len(args) != 1 {
			return fmt.Errorf("%w: snapshot takes <file>", errUsage)
		}
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	bus, err := openBus(cfg, logger)
	if err != nil {
		return err
	}
	defer bus.Close()

	devLogger := logger.With().Str("mod", "HT16K33").Logger()
	d, err := ht16k33.NewI2C(bus, cfg.I2CAddress, &ht16k33.Opts{Logger: &devLogger})
	if err != nil {
		return err
	}
	if err := d.SetBrightness(cfg.Brightness); err != nil {
		return err
	}
	bgLogger := logger.With().Str("mod", "bargraph").Logger()
	bg, err := bargraph.New(d, &bargraph.Opts{Resolution: cfg.Steps, Logger: &bgLogger})
	if err != nil {
		return err
	}

	switch cmd {
	case "clear":
		logger.Info().Msg("clearing the display")
		if err := bg.Clear(); err != nil {
			return err
		}
	case "set":
		logger.Info().Int("value", value).Int("range", rng).Msg("setting a value in the range on the display")
		if _, err := bg.Update(value, rng); err != nil {
			return err
		}
	case "show":
		logger.Info().Msg("showing on-screen the current display")
		return bg.Show(stdout)
	case "snapshot":
		return writeSnapshot(bg, d, args[0], logger)
	}
	if cfg.Show {
		return bg.Show(stdout)
	}
	return nil
}

func openBus(cfg config, logger zerolog.Logger) (i2c.BusCloser, error) {
	if cfg.Sim {
		logger.Debug().Msg("using a simulated device")
		return ht16k33sim.New(cfg.I2CAddress), nil
	}
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("failed to open I²C bus %q: %w", cfg.I2CBus, err)
	}
	return bus, nil
}

func writeSnapshot(bg *bargraph.Dev, d *ht16k33.Dev, path string, logger zerolog.Logger) error {
	bars, err := bg.ReadBars()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	blink := d.BlinkRate() != ht16k33.BlinkOff
	if err := snapshot.WritePNG(f, bars, blink, &snapshot.Opts{Title: d.String()}); err != nil {
		f.Close()
		return err
	}
	logger.Info().Str("path", path).Msg("snapshot saved")
	return f.Close()
}
