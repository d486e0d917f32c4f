// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/GermanBionicSystems/ledbargraph/bargraph"
	"github.com/GermanBionicSystems/ledbargraph/ht16k33"
)

// config is the effective configuration, from defaults, an optional YAML
// file and the flags given on the command line, in increasing priority.
type config struct {
	I2CBus     string `yaml:"i2c_bus"`
	I2CAddress uint16 `yaml:"i2c_address"`
	Steps      int    `yaml:"steps"`
	Brightness uint8  `yaml:"brightness"`
	Show       bool   `yaml:"show"`
	Sim        bool   `yaml:"sim"`
	LogLevel   string `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		I2CAddress: ht16k33.DefaultAddress,
		Steps:      bargraph.Bars,
		Brightness: ht16k33.MaxBrightness,
		LogLevel:   "info",
	}
}

func loadConfig(path string, c *config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// applyFlags copies the flags explicitly set in fs over c.
func applyFlags(fs *flag.FlagSet, c *config) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case "i2c-bus":
			c.I2CBus = v
		case "i2c-address":
			var a uint64
			a, err = strconv.ParseUint(v, 0, 16)
			c.I2CAddress = uint16(a)
		case "steps":
			c.Steps, err = strconv.Atoi(v)
		case "brightness":
			var l uint64
			l, err = strconv.ParseUint(v, 0, 8)
			c.Brightness = uint8(l)
		case "show":
			c.Show, err = strconv.ParseBool(v)
		case "sim":
			c.Sim, err = strconv.ParseBool(v)
		case "log-level":
			c.LogLevel = v
		}
		if err != nil {
			err = fmt.Errorf("-%s: %w", f.Name, err)
		}
	})
	return err
}
