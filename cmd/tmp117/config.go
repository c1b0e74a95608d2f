// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/GermanBionicSystems/tmp117/tmp117"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// Config is the YAML configuration applied to the sensor at startup. Unset
// fields leave the device setting untouched.
type Config struct {
	Bus      string        `yaml:"bus"`
	Address  uint16        `yaml:"address"`
	Interval time.Duration `yaml:"interval"`
	Count    int           `yaml:"count"`

	Mode            string   `yaml:"mode"`
	Averaging       int      `yaml:"averaging"`
	ConversionCycle *uint8   `yaml:"conversion_cycle"`
	AlertMode       string   `yaml:"alert_mode"`
	HighLimit       *float64 `yaml:"high_limit"`
	LowLimit        *float64 `yaml:"low_limit"`
	Offset          *float64 `yaml:"offset"`

	Bar BarConfig `yaml:"bar"`
}

// BarConfig sets the range shown by the thermometer bar, in °C.
type BarConfig struct {
	Enabled bool    `yaml:"enabled"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Width   int     `yaml:"width"`
}

// DefaultConfig reads the sensor at the default address once a second.
var DefaultConfig = Config{
	Address:  tmp117.DefaultAddress,
	Interval: time.Second,
	Bar:      BarConfig{Min: 15, Max: 35, Width: 40},
}

// ParseConfig decodes data over DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

func (c *Config) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("config: interval must be positive, got %s", c.Interval)
	}
	if c.Count < 0 {
		return fmt.Errorf("config: count must not be negative, got %d", c.Count)
	}
	if c.Address > maxAddress {
		return fmt.Errorf("config: address %#x is not a 7 bit I²C address", c.Address)
	}
	if c.ConversionCycle != nil && *c.ConversionCycle > 7 {
		return fmt.Errorf("config: conversion cycle must be 0 to 7, got %d", *c.ConversionCycle)
	}
	if c.Bar.Max <= c.Bar.Min {
		return fmt.Errorf("config: bar range [%g, %g] is empty", c.Bar.Min, c.Bar.Max)
	}
	if c.Bar.Width <= 0 {
		return fmt.Errorf("config: bar width must be positive, got %d", c.Bar.Width)
	}
	if _, err := c.mode(); err != nil {
		return err
	}
	if _, err := c.averaging(); err != nil {
		return err
	}
	if _, err := c.alertMode(); err != nil {
		return err
	}
	return nil
}

// maxAddress is the highest 7 bit I²C address.
const maxAddress = 0x7f

// address converts the -addr flag value.
func address(a uint) (uint16, error) {
	if a > maxAddress {
		return 0, fmt.Errorf("address %#x is not a 7 bit I²C address", a)
	}
	return uint16(a), nil
}

func (c *Config) mode() (tmp117.Mode, error) {
	switch strings.ToLower(c.Mode) {
	case "", "continuous":
		return tmp117.Continuous, nil
	case "shutdown":
		return tmp117.Shutdown, nil
	case "oneshot", "one-shot":
		return tmp117.OneShot, nil
	default:
		return 0, fmt.Errorf("config: unknown mode %q", c.Mode)
	}
}

func (c *Config) averaging() (tmp117.Average, error) {
	switch c.Averaging {
	case 0, 1:
		return tmp117.AverageNone, nil
	case 8:
		return tmp117.Average8X, nil
	case 32:
		return tmp117.Average32X, nil
	case 64:
		return tmp117.Average64X, nil
	default:
		return 0, fmt.Errorf("config: averaging must be 1, 8, 32 or 64, got %d", c.Averaging)
	}
}

func (c *Config) alertMode() (tmp117.AlertMode, error) {
	switch strings.ToLower(c.AlertMode) {
	case "", "alert":
		return tmp117.ModeAlert, nil
	case "therm":
		return tmp117.ModeTherm, nil
	default:
		return 0, fmt.Errorf("config: unknown alert mode %q", c.AlertMode)
	}
}

// celsius converts a temperature in °C.
func celsius(c float64) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(c*float64(physic.Kelvin))
}

// Apply writes the configured settings to the sensor.
func (c *Config) Apply(dev *tmp117.Dev) error {
	avg, err := c.averaging()
	if err != nil {
		return err
	}
	// Zero keeps the device default.
	if c.Averaging != 0 {
		if err = dev.SetAveraging(avg); err != nil {
			return err
		}
	}
	if c.ConversionCycle != nil {
		if err = dev.SetConversionCycle(tmp117.ConversionCycle(*c.ConversionCycle)); err != nil {
			return err
		}
	}
	if c.AlertMode != "" {
		am, err := c.alertMode()
		if err != nil {
			return err
		}
		if err = dev.SetAlertMode(am); err != nil {
			return err
		}
	}
	if c.HighLimit != nil {
		if err = dev.SetHighLimit(celsius(*c.HighLimit)); err != nil {
			return err
		}
	}
	if c.LowLimit != nil {
		if err = dev.SetLowLimit(celsius(*c.LowLimit)); err != nil {
			return err
		}
	}
	if c.Offset != nil {
		if err = dev.SetTemperatureOffset(physic.Temperature(*c.Offset * float64(physic.Kelvin))); err != nil {
			return err
		}
	}
	// One shot is triggered per reading, see read.
	m, err := c.mode()
	if err != nil {
		return err
	}
	if m != tmp117.OneShot {
		return dev.SetMeasurementMode(m)
	}
	return nil
}
