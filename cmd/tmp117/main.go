// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tmp117 reads a TMP117 temperature sensor and prints its readings.
//
// Sensor settings (averaging, alert limits, offset...) can be applied from a
// YAML file given with -config:
//
//	bus: "1"
//	address: 0x48
//	interval: 500ms
//	averaging: 64
//	alert_mode: alert
//	high_limit: 23
//	low_limit: 20
//	offset: 0
//	bar:
//	  enabled: true
//	  min: 15
//	  max: 35
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/tmp117/tmp117"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	configPath := flag.String("config", "", "YAML configuration file")
	busName := flag.String("bus", "", "I²C bus to use")
	addr := flag.Uint("addr", 0, "I²C address of the sensor, default 0x48")
	interval := flag.Duration("interval", 0, "interval between readings")
	count := flag.Int("n", -1, "number of readings, 0 reads forever")
	showBar := flag.Bool("bar", false, "draw a thermometer bar instead of log lines")
	loglevel := flag.Int("loglevel", int(logrus.InfoLevel), "The loglevel to use. Valid values are from 0 to 6. Higher values output more information")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	log := newLogger(*loglevel)

	cfg := DefaultConfig
	if *configPath != "" {
		c, err := LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = *c
	}
	if *busName != "" {
		cfg.Bus = *busName
	}
	if *addr != 0 {
		a, err := address(*addr)
		if err != nil {
			return err
		}
		cfg.Address = a
	}
	if *interval != 0 {
		cfg.Interval = *interval
	}
	if *count >= 0 {
		cfg.Count = *count
	}
	if *showBar {
		cfg.Bar.Enabled = true
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return err
	}
	defer bus.Close()

	dev, err := tmp117.NewI2C(bus, cfg.Address, nil)
	if err != nil {
		return err
	}
	log.WithField("device", dev.String()).Info("sensor ready")
	if rev, err := dev.Revision(); err == nil {
		log.WithField("revision", rev).Debug("device id")
	}
	if err = cfg.Apply(dev); err != nil {
		return fmt.Errorf("applying config: %w", err)
	}
	logSettings(log, dev)

	// In one shot mode every reading triggers its own conversion.
	read := dev.Temperature
	if m, _ := cfg.mode(); m == tmp117.OneShot {
		read = dev.OneShot
	}

	var b *bar
	if cfg.Bar.Enabled {
		b = newBar(colorable.NewColorableStdout(), cfg.Bar)
		defer b.Close()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for i := 0; cfg.Count == 0 || i < cfg.Count; i++ {
		if i != 0 {
			select {
			case <-sig:
				return dev.Halt()
			case <-ticker.C:
			}
		}
		t, err := read()
		if err != nil {
			return err
		}
		status, err := dev.AlertStatus()
		if err != nil {
			return err
		}
		if b != nil {
			if err = b.Draw(t); err != nil {
				return err
			}
			continue
		}
		entry := log.WithField("temperature", t.String())
		if status.High {
			entry.Warn("temperature above high limit")
		} else if status.Low {
			entry.Warn("temperature below low limit")
		} else {
			entry.Info("reading")
		}
	}
	return nil
}

// logSettings logs the device configuration at debug level.
func logSettings(log *logrus.Entry, dev *tmp117.Dev) {
	if !log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	fields := logrus.Fields{}
	if m, err := dev.MeasurementMode(); err == nil {
		fields["mode"] = m.String()
	}
	if a, err := dev.Averaging(); err == nil {
		fields["averaging"] = a.String()
	}
	if c, err := dev.ConversionCycle(); err == nil {
		fields["conversion_cycle"] = c
	}
	if am, err := dev.AlertMode(); err == nil {
		fields["alert_mode"] = am
	}
	if h, err := dev.HighLimit(); err == nil {
		fields["high_limit"] = h.String()
	}
	if l, err := dev.LowLimit(); err == nil {
		fields["low_limit"] = l.String()
	}
	if o, err := dev.TemperatureOffset(); err == nil {
		fields["offset"] = o.String()
	}
	env := physic.Env{}
	dev.Precision(&env)
	fields["precision"] = env.Temperature.String()
	log.WithFields(fields).Debug("settings")
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "tmp117: %s.\n", err)
		os.Exit(1)
	}
}
