// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import (
	"encoding/binary"
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/mmr"
)

// Kind is the encoding of one integer inside a Register.
type Kind int

const (
	Uint8 Kind = iota
	Int8
	Uint16
	Int16
	Uint32
	Int32
)

// Size returns the number of bytes used by k.
func (k Kind) Size() int {
	switch k {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32:
		return 4
	default:
		return 0
	}
}

// Signed reports whether k is sign extended when decoded.
func (k Kind) Signed() bool {
	return k == Int8 || k == Int16 || k == Int32
}

func (k Kind) String() string {
	switch k {
	case Uint8:
		return "Uint8"
	case Int8:
		return "Int8"
	case Uint16:
		return "Uint16"
	case Int16:
		return "Int16"
	case Uint32:
		return "Uint32"
	case Int32:
		return "Int32"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// extend returns u, the low Size() bytes of an integer of kind k, sign
// extended when k is signed.
func (k Kind) extend(u uint64) int64 {
	if !k.Signed() {
		return int64(u)
	}
	shift := uint(64 - 8*k.Size())
	return int64(u<<shift) >> shift
}

// decode returns the big-endian integer of kind k at the start of b.
func (k Kind) decode(b []byte) int64 {
	switch k.Size() {
	case 1:
		return k.extend(uint64(b[0]))
	case 2:
		return k.extend(uint64(binary.BigEndian.Uint16(b)))
	case 4:
		return k.extend(uint64(binary.BigEndian.Uint32(b)))
	default:
		return 0
	}
}

var errEmptyFormat = errors.New("common: register format is empty")

// Register describes a whole register at Addr holding the big-endian integers
// listed in Format, in order.
//
// Read of a single value format and Write go through mmr.Dev8, which only
// accepts half duplex connections such as an i2c.Dev. Values and BitField
// issue a plain Tx and have no such restriction.
type Register struct {
	Addr   uint8
	Format []Kind
}

// NewRegister returns a Register at addr holding the integers of format.
func NewRegister(addr uint8, format ...Kind) Register {
	return Register{Addr: addr, Format: format}
}

// Len returns the number of bytes read from the bus by Read and Values.
func (r Register) Len() int {
	n := 0
	for _, k := range r.Format {
		n += k.Size()
	}
	return n
}

// Read returns the first integer of the register. It is meant for single
// value formats; use Values when the format holds more than one integer.
func (r Register) Read(c conn.Conn) (int64, error) {
	if len(r.Format) == 0 {
		return 0, errEmptyFormat
	}
	if len(r.Format) > 1 {
		v, err := r.Values(c)
		if err != nil {
			return 0, err
		}
		return v[0], nil
	}
	d := mmr.Dev8{Conn: c, Order: binary.BigEndian}
	k := r.Format[0]
	var u uint64
	switch k.Size() {
	case 1:
		v, err := d.ReadUint8(r.Addr)
		if err != nil {
			return 0, err
		}
		u = uint64(v)
	case 2:
		v, err := d.ReadUint16(r.Addr)
		if err != nil {
			return 0, err
		}
		u = uint64(v)
	case 4:
		v, err := d.ReadUint32(r.Addr)
		if err != nil {
			return 0, err
		}
		u = uint64(v)
	default:
		return 0, fmt.Errorf("common: unsupported kind %s", k)
	}
	return k.extend(u), nil
}

// Values reads the whole register in one bus transaction and returns every
// integer of the format.
func (r Register) Values(c conn.Conn) ([]int64, error) {
	if len(r.Format) == 0 {
		return nil, errEmptyFormat
	}
	b := make([]byte, r.Len())
	if err := c.Tx([]byte{r.Addr}, b); err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(r.Format))
	off := 0
	for _, k := range r.Format {
		out = append(out, k.decode(b[off:]))
		off += k.Size()
	}
	return out, nil
}

// Write writes the low 8 bits of v to Addr.
//
// Exactly one byte is written whatever the format length is. Wider registers
// must be written through a BitField spanning the whole register.
func (r Register) Write(c conn.Conn, v int64) error {
	d := mmr.Dev8{Conn: c, Order: binary.BigEndian}
	return d.WriteUint8(r.Addr, uint8(v))
}

func (r Register) String() string {
	return fmt.Sprintf("Register{addr: %#04x, format: %v}", r.Addr, r.Format)
}
