// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestRegisterRead(t *testing.T) {
	tests := []struct {
		kind     Kind
		bytes    []byte
		expected int64
	}{
		{Uint8, []byte{0xfe}, 254},
		{Int8, []byte{0xfe}, -2},
		{Uint16, []byte{0x01, 0x17}, 0x117},
		{Int16, []byte{0x00, 0x80}, 128},
		{Int16, []byte{0xff, 0x80}, -128},
		{Uint16, []byte{0xff, 0x80}, 0xff80},
		{Int32, []byte{0xff, 0xff, 0xff, 0xfe}, -2},
		{Uint32, []byte{0x80, 0x00, 0x00, 0x01}, 0x80000001},
	}
	for _, test := range tests {
		pb := &i2ctest.Playback{
			Ops:       []i2ctest.IO{{Addr: addr, W: []byte{0x0f}, R: test.bytes}},
			DontPanic: true,
		}
		reg := NewRegister(0x0f, test.kind)
		assert.Equal(t, len(test.bytes), reg.Len())
		v, err := reg.Read(&i2c.Dev{Bus: pb, Addr: addr})
		require.NoError(t, err, test.kind.String())
		assert.Equal(t, test.expected, v, test.kind.String())
		require.NoError(t, pb.Close())
	}
}

func TestRegisterValues(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: addr, W: []byte{0x04}, R: []byte{0xff, 0x80, 0x12, 0x01, 0x17}}},
		DontPanic: true,
	}
	reg := NewRegister(0x04, Int16, Uint8, Uint16)
	require.Equal(t, 5, reg.Len())
	v, err := reg.Values(&i2c.Dev{Bus: pb, Addr: addr})
	require.NoError(t, err)
	assert.Equal(t, []int64{-128, 0x12, 0x117}, v)
	require.NoError(t, pb.Close())
}

func TestRegisterReadMultiValue(t *testing.T) {
	f := &registerFile{}
	copy(f.mem[0x04:], []byte{0x00, 0x80, 0x01})
	v, err := NewRegister(0x04, Int16, Uint8).Read(f)
	require.NoError(t, err)
	assert.Equal(t, int64(128), v)
	assert.Equal(t, 1, f.reads)
}

func TestRegisterEmptyFormat(t *testing.T) {
	f := &registerFile{}
	_, err := Register{Addr: 0x01}.Read(f)
	assert.Error(t, err)
	_, err = Register{Addr: 0x01}.Values(f)
	assert.Error(t, err)
	assert.Zero(t, f.reads)
}

// TestRegisterWriteSingleByte checks that a write only ever puts one data
// byte on the bus, whatever the declared register width.
func TestRegisterWriteSingleByte(t *testing.T) {
	for _, format := range [][]Kind{{Uint8}, {Int16}, {Uint16}, {Uint32}, {Int16, Int16}} {
		f := &registerFile{}
		reg := NewRegister(0x02, format...)
		require.NoError(t, reg.Write(f, 0x1234))
		require.Len(t, f.writes, 1, reg.String())
		assert.Equal(t, []byte{0x34}, f.writes[0], reg.String())
		assert.Zero(t, f.reads)
	}

	pb := &i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: addr, W: []byte{0x02, 0xff}}},
		DontPanic: true,
	}
	require.NoError(t, NewRegister(0x02, Int16).Write(&i2c.Dev{Bus: pb, Addr: addr}, -1))
	require.NoError(t, pb.Close())
}

func TestRegisterBusError(t *testing.T) {
	errBus := errors.New("i2c: timeout")
	f := &registerFile{err: errBus}
	reg := NewRegister(0x00, Int16)

	_, err := reg.Values(f)
	assert.Same(t, errBus, err)
	assert.ErrorIs(t, reg.Write(f, 1), errBus)
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind   Kind
		size   int
		signed bool
	}{
		{Uint8, 1, false},
		{Int8, 1, true},
		{Uint16, 2, false},
		{Int16, 2, true},
		{Uint32, 4, false},
		{Int32, 4, true},
	}
	for _, test := range tests {
		assert.Equal(t, test.size, test.kind.Size(), test.kind.String())
		assert.Equal(t, test.signed, test.kind.Signed(), test.kind.String())
	}
	assert.Zero(t, Kind(42).Size())
	assert.False(t, Kind(42).Signed())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestRegisterString(t *testing.T) {
	assert.Equal(t, "Register{addr: 0x01, format: [Int16]}", NewRegister(0x01, Int16).String())
	assert.Equal(t, "Register{addr: 0x0f, format: [Uint16]}", NewRegister(0x0f, Uint16).String())
}
