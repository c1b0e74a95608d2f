// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import (
	"fmt"

	"periph.io/x/conn/v3"
)

// ByteOrder selects which end of a register window is the most significant
// byte when the window is folded into an integer on read.
type ByteOrder int

const (
	// MSBFirst folds the first byte received as the most significant one.
	MSBFirst ByteOrder = iota
	// LSBFirst folds the last byte received as the most significant one.
	LSBFirst
)

func (o ByteOrder) String() string {
	switch o {
	case MSBFirst:
		return "MSBFirst"
	case LSBFirst:
		return "LSBFirst"
	default:
		return fmt.Sprintf("ByteOrder(%d)", int(o))
	}
}

// BitField describes Bits bits starting at bit Start of the Width bytes wide
// register window at address Register.
//
// Order only applies to reads. Write always serializes the window back most
// significant byte first.
type BitField struct {
	Register uint8
	Bits     int
	Start    int
	Width    int
	Order    ByteOrder
}

// NewBitField returns a BitField for bits bits at offset start inside the
// width bytes wide window at reg.
//
// It panics if the field does not fit in the window, since descriptors are
// expected to be package level declarations of a fixed register map.
func NewBitField(reg uint8, bits, start, width int, order ByteOrder) BitField {
	f := BitField{Register: reg, Bits: bits, Start: start, Width: width, Order: order}
	if err := f.validate(); err != nil {
		panic(err)
	}
	return f
}

func (f BitField) validate() error {
	if f.Width < 1 || f.Width > 8 {
		return fmt.Errorf("common: register width %d out of range [1, 8]", f.Width)
	}
	if f.Bits < 1 || f.Start < 0 || f.Start+f.Bits > f.Width*8 {
		return fmt.Errorf("common: %d bits at offset %d do not fit in %d byte register", f.Bits, f.Start, f.Width)
	}
	if f.Order != MSBFirst && f.Order != LSBFirst {
		return fmt.Errorf("common: invalid byte order %s", f.Order)
	}
	return nil
}

// Mask returns the bits covered by the field, in register window coordinates.
func (f BitField) Mask() uint64 {
	return (uint64(1)<<uint(f.Bits) - 1) << uint(f.Start)
}

// Fold assembles the window bytes b into an integer according to f.Order.
func (f BitField) Fold(b []byte) uint64 {
	var acc uint64
	if f.Order == LSBFirst {
		for i := len(b) - 1; i >= 0; i-- {
			acc = acc<<8 | uint64(b[i])
		}
		return acc
	}
	for _, v := range b {
		acc = acc<<8 | uint64(v)
	}
	return acc
}

// Read returns the current value of the field.
func (f BitField) Read(c conn.Conn) (uint64, error) {
	reg, err := f.window(c)
	if err != nil {
		return 0, err
	}
	return f.Extract(reg), nil
}

// Extract returns the field value held in an already folded register window.
// It lets several fields be decoded from a single bus read.
func (f BitField) Extract(window uint64) uint64 {
	return (window & f.Mask()) >> uint(f.Start)
}

// Write replaces the field with v, leaving the other bits of the window as
// they were read.
//
// v is not range checked. Bits of v beyond the field width are ORed into the
// neighbouring bits.
func (f BitField) Write(c conn.Conn, v uint64) error {
	reg, err := f.window(c)
	if err != nil {
		return err
	}
	reg &^= f.Mask()
	reg |= v << uint(f.Start)

	w := make([]byte, 1+f.Width)
	w[0] = f.Register
	for i := f.Width; i > 0; i-- {
		w[i] = byte(reg)
		reg >>= 8
	}
	return c.Tx(w, nil)
}

func (f BitField) window(c conn.Conn) (uint64, error) {
	r := make([]byte, f.Width)
	if err := c.Tx([]byte{f.Register}, r); err != nil {
		return 0, err
	}
	return f.Fold(r), nil
}

func (f BitField) String() string {
	return fmt.Sprintf("BitField{reg: %#04x, bits: %d, start: %d, width: %d, order: %s}", f.Register, f.Bits, f.Start, f.Width, f.Order)
}
