// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp117

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/GermanBionicSystems/tmp117/common"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Mode is the conversion mode of the device.
type Mode uint8

const (
	// Continuous conversions every conversion cycle. Device default.
	Continuous Mode = 0b00
	// Shutdown stops conversions. The temperature register keeps the last
	// result.
	Shutdown Mode = 0b01
	// OneShot runs a single conversion and then returns to Shutdown.
	OneShot Mode = 0b11
)

func (m Mode) String() string {
	switch m {
	case Continuous:
		return "Continuous"
	case Shutdown:
		return "Shutdown"
	case OneShot:
		return "OneShot"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Average is the number of conversions averaged into each result.
type Average uint8

const (
	AverageNone Average = iota
	Average8X
	Average32X
	Average64X
)

func (a Average) String() string {
	switch a {
	case AverageNone:
		return "AverageNone"
	case Average8X:
		return "Average8X"
	case Average32X:
		return "Average32X"
	case Average64X:
		return "Average64X"
	default:
		return fmt.Sprintf("Average(%d)", uint8(a))
	}
}

// ConversionCycle selects the standby time between conversions in
// Continuous mode. Refer to table 7-7 of the datasheet, the effective cycle
// time also depends on the Average setting. The device default is 4.
type ConversionCycle uint8

// AlertMode selects how the ALERT pin and the alert flags behave.
type AlertMode uint8

const (
	// ModeAlert sets the flags when a result crosses a limit. The flags are
	// cleared when the configuration register is read.
	ModeAlert AlertMode = 0
	// ModeTherm sets the high flag above the high limit and clears it once the
	// result falls below the low limit.
	ModeTherm AlertMode = 1
)

// AlertStatus is the state of the alert flags.
type AlertStatus struct {
	High bool
	Low  bool
}

const (
	// DefaultAddress is the I²C address with the ADD0 pin tied to ground.
	DefaultAddress uint16 = 0x48

	expectedDeviceID = 0x117

	_DEGREES_RESOLUTION physic.Temperature = 7_812_500 * physic.NanoKelvin

	// The minimum temperature the device can read.
	MinimumTemperature physic.Temperature = physic.ZeroCelsius - 55*physic.Kelvin
	// The maximum temperature the device can read.
	MaximumTemperature physic.Temperature = physic.ZeroCelsius + 150*physic.Kelvin
)

var (
	// ErrDeviceNotFound is returned by NewI2C when the device ID register
	// does not identify a TMP117.
	ErrDeviceNotFound = errors.New("tmp117: device not found")
	// ErrNotReady is returned when the data ready flag is not set within
	// Opts.MaxPolls polls.
	ErrNotReady = errors.New("tmp117: timed out waiting for data ready")
	// ErrInvalidValue is returned by setters given a value the register
	// cannot hold.
	ErrInvalidValue = errors.New("tmp117: invalid value")
)

// Opts represents configurable options for the TMP117.
type Opts struct {
	// PollInterval is the delay between two reads of the data ready flag.
	PollInterval time.Duration
	// MaxPolls bounds the number of data ready reads. 0 selects the default,
	// a negative value waits forever.
	MaxPolls int
}

// DefaultOpts waits up to about one second for a conversion.
var DefaultOpts = Opts{
	PollInterval: time.Millisecond,
	MaxPolls:     1000,
}

// Dev represents a TMP117 sensor.
type Dev struct {
	d    *i2c.Dev
	opts Opts
	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup

	// halted is set by Halt. The next Sense restarts continuous conversions.
	halted bool
}

// NewI2C returns a new TMP117 sensor using the specified bus and address.
//
// The device ID is verified, the device is soft reset and put in Continuous
// mode, and NewI2C returns once the first conversion is available. If opts is
// nil, DefaultOpts is used.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultOpts.PollInterval
	}
	if o.MaxPolls == 0 {
		o.MaxPolls = DefaultOpts.MaxPolls
	}
	dev := &Dev{d: &i2c.Dev{Bus: b, Addr: addr}, opts: o}
	return dev, dev.start()
}

// start identifies the device and brings it to a known state.
func (dev *Dev) start() error {
	id, err := deviceID.Read(dev.d)
	if err != nil {
		return err
	}
	if id != expectedDeviceID {
		return fmt.Errorf("%w: id %#04x", ErrDeviceNotFound, id)
	}
	// The device clears the bit itself once the reset completes.
	if err = softReset.Write(dev.d, 1); err != nil {
		return err
	}
	if err = mode.Write(dev.d, uint64(Continuous)); err != nil {
		return err
	}
	if err = dev.waitReady(); err != nil {
		return err
	}
	_, err = dev.readTemperature()
	return err
}

// waitReady polls the data ready flag until it is set.
func (dev *Dev) waitReady() error {
	for i := 0; dev.opts.MaxPolls < 0 || i < dev.opts.MaxPolls; i++ {
		ready, err := dataReady.Read(dev.d)
		if err != nil {
			return err
		}
		if ready == 1 {
			return nil
		}
		time.Sleep(dev.opts.PollInterval)
	}
	return ErrNotReady
}

func (dev *Dev) readTemperature() (physic.Temperature, error) {
	count, err := rawTemperature.Read(dev.d)
	if err != nil {
		return MinimumTemperature, err
	}
	return countToTemperature(count), nil
}

// countToTemperature converts a signed register count to a temperature.
func countToTemperature(count int64) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(count)*_DEGREES_RESOLUTION
}

// deltaToCount converts a temperature difference to the nearest signed
// register count.
func deltaToCount(delta physic.Temperature) (uint64, error) {
	count := math.Round(float64(delta) / float64(_DEGREES_RESOLUTION))
	if count < math.MinInt16 || count > math.MaxInt16 {
		return 0, ErrInvalidValue
	}
	return uint64(uint16(int16(count))), nil
}

// Temperature returns the last conversion result.
func (dev *Dev) Temperature() (physic.Temperature, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.readTemperature()
}

// OneShot triggers a single conversion, waits for it and returns the result.
// The device is left in Shutdown mode.
func (dev *Dev) OneShot() (physic.Temperature, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := mode.Write(dev.d, uint64(OneShot)); err != nil {
		return MinimumTemperature, err
	}
	if err := dev.waitReady(); err != nil {
		return MinimumTemperature, err
	}
	return dev.readTemperature()
}

// MeasurementMode returns the current conversion mode.
func (dev *Dev) MeasurementMode() (Mode, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := mode.Read(dev.d)
	if err != nil {
		return Continuous, err
	}
	// 0b10 is a second encoding of continuous conversion.
	if Mode(v) == 0b10 {
		return Continuous, nil
	}
	return Mode(v), nil
}

// SetMeasurementMode changes the conversion mode.
func (dev *Dev) SetMeasurementMode(m Mode) error {
	if m != Continuous && m != Shutdown && m != OneShot {
		return fmt.Errorf("%w: mode %s", ErrInvalidValue, m)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := mode.Write(dev.d, uint64(m)); err != nil {
		return err
	}
	dev.halted = false
	return nil
}

// Averaging returns the number of averaged conversions.
func (dev *Dev) Averaging() (Average, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := averaging.Read(dev.d)
	return Average(v), err
}

// SetAveraging changes the number of averaged conversions.
func (dev *Dev) SetAveraging(a Average) error {
	if a > Average64X {
		return fmt.Errorf("%w: averaging %s", ErrInvalidValue, a)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return averaging.Write(dev.d, uint64(a))
}

// ConversionCycle returns the conversion cycle setting.
func (dev *Dev) ConversionCycle() (ConversionCycle, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := conversionCycle.Read(dev.d)
	return ConversionCycle(v), err
}

// SetConversionCycle changes the conversion cycle setting, 0 to 7.
func (dev *Dev) SetConversionCycle(c ConversionCycle) error {
	if c > 7 {
		return fmt.Errorf("%w: conversion cycle %d", ErrInvalidValue, c)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return conversionCycle.Write(dev.d, uint64(c))
}

// AlertMode returns the alert function mode.
func (dev *Dev) AlertMode() (AlertMode, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := thermAlert.Read(dev.d)
	return AlertMode(v), err
}

// SetAlertMode changes the alert function mode.
func (dev *Dev) SetAlertMode(m AlertMode) error {
	if m != ModeAlert && m != ModeTherm {
		return fmt.Errorf("%w: alert mode %d", ErrInvalidValue, m)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return thermAlert.Write(dev.d, uint64(m))
}

// AlertStatus returns both alert flags. The configuration register is read
// once since reading it clears the flags in ModeAlert.
func (dev *Dev) AlertStatus() (AlertStatus, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := configuration.Read(dev.d)
	if err != nil {
		return AlertStatus{}, err
	}
	return AlertStatus{
		High: highAlert.Extract(uint64(v)) == 1,
		Low:  lowAlert.Extract(uint64(v)) == 1,
	}, nil
}

func (dev *Dev) readLimit(reg common.Register) (physic.Temperature, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	count, err := reg.Read(dev.d)
	if err != nil {
		return MinimumTemperature, err
	}
	return countToTemperature(count), nil
}

// HighLimit returns the high alert limit.
func (dev *Dev) HighLimit() (physic.Temperature, error) {
	return dev.readLimit(rawHighLimit)
}

// LowLimit returns the low alert limit.
func (dev *Dev) LowLimit() (physic.Temperature, error) {
	return dev.readLimit(rawLowLimit)
}

// SetHighLimit changes the high alert limit. The value is rounded to the
// device resolution.
func (dev *Dev) SetHighLimit(t physic.Temperature) error {
	count, err := deltaToCount(t - physic.ZeroCelsius)
	if err != nil {
		return err
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return highLimitWord.Write(dev.d, count)
}

// SetLowLimit changes the low alert limit. The value is rounded to the
// device resolution.
func (dev *Dev) SetLowLimit(t physic.Temperature) error {
	count, err := deltaToCount(t - physic.ZeroCelsius)
	if err != nil {
		return err
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return lowLimitWord.Write(dev.d, count)
}

// TemperatureOffset returns the offset added to every conversion result.
func (dev *Dev) TemperatureOffset() (physic.Temperature, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	count, err := rawOffset.Read(dev.d)
	if err != nil {
		return 0, err
	}
	return physic.Temperature(count) * _DEGREES_RESOLUTION, nil
}

// SetTemperatureOffset changes the offset added to every conversion result.
// offset is a temperature difference, e.g. 10*physic.Kelvin.
func (dev *Dev) SetTemperatureOffset(offset physic.Temperature) error {
	count, err := deltaToCount(offset)
	if err != nil {
		return err
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return offsetWord.Write(dev.d, count)
}

// Revision returns the device revision number.
func (dev *Dev) Revision() (uint8, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := revision.Read(dev.d)
	return uint8(v), err
}

// Sense reads temperature from the device and writes the value to the
// specified env variable. A device stopped by Halt is put back in Continuous
// mode first. Implements physic.SenseEnv.
func (dev *Dev) Sense(env *physic.Env) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.halted {
		if err := dev.resume(); err != nil {
			return err
		}
	}
	t, err := dev.readTemperature()
	if err == nil {
		env.Temperature = t
	}
	return err
}

// resume restarts continuous conversions and waits for the first result.
func (dev *Dev) resume() error {
	if err := mode.Write(dev.d, uint64(Continuous)); err != nil {
		return err
	}
	if err := dev.waitReady(); err != nil {
		return err
	}
	dev.halted = false
	return nil
}

// SenseContinuous continuously reads from the device and writes the value to
// the returned channel. Implements physic.SenseEnv. To terminate the
// continuous read, call Halt().
func (dev *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval <= 0 {
		return nil, errors.New("tmp117: invalid duration")
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.stop != nil {
		return nil, errors.New("tmp117: already sensing continuously")
	}
	channelSize := 16
	channel := make(chan physic.Env, channelSize)
	dev.stop = make(chan struct{})
	dev.wg.Add(1)
	go func(stop <-chan struct{}) {
		defer dev.wg.Done()
		defer close(channel)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e := physic.Env{}
				if err := dev.Sense(&e); err == nil && len(channel) < channelSize {
					channel <- e
				}
			}
		}
	}(dev.stop)
	return channel, nil
}

// Precision returns the sensor's precision, or minimum value between steps
// the device can make. Implements physic.SenseEnv.
func (dev *Dev) Precision(env *physic.Env) {
	env.Temperature = _DEGREES_RESOLUTION
	env.Pressure = 0
	env.Humidity = 0
}

// Halt aborts a SenseContinuous operation in progress and puts the device
// in Shutdown mode. Sense, SenseContinuous or SetMeasurementMode(Continuous)
// resume conversions. Implements conn.Resource.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	stop := dev.stop
	dev.stop = nil
	dev.mu.Unlock()
	if stop != nil {
		close(stop)
		dev.wg.Wait()
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := mode.Write(dev.d, uint64(Shutdown)); err != nil {
		return err
	}
	dev.halted = true
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("tmp117: %s", dev.d.String())
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
