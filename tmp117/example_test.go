// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp117_test

import (
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/tmp117/tmp117"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	sensor, err := tmp117.NewI2C(bus, tmp117.DefaultAddress, nil)
	if err != nil {
		log.Fatal(err)
	}
	env := physic.Env{}
	if err = sensor.Sense(&env); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Temperature: %s\n", env.Temperature)
}

func ExampleDev_AlertStatus() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	sensor, err := tmp117.NewI2C(bus, tmp117.DefaultAddress, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err = sensor.SetHighLimit(physic.ZeroCelsius + 23*physic.Kelvin); err != nil {
		log.Fatal(err)
	}
	if err = sensor.SetLowLimit(physic.ZeroCelsius + 20*physic.Kelvin); err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		t, err := sensor.Temperature()
		if err != nil {
			log.Fatal(err)
		}
		status, err := sensor.AlertStatus()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Temperature: %s high alert: %t low alert: %t\n", t, status.High, status.Low)
		time.Sleep(time.Second)
	}
}

func ExampleDev_OneShot() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	sensor, err := tmp117.NewI2C(bus, tmp117.DefaultAddress, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err = sensor.SetAveraging(tmp117.Average64X); err != nil {
		log.Fatal(err)
	}
	t, err := sensor.OneShot()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Single measurement: %s\n", t)
}
