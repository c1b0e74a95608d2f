// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
)

// registerFile is an in-memory register map implementing conn.Conn the way a
// register oriented I²C device answers: a write of a single byte selects the
// register to read from, a longer write stores the remaining bytes starting at
// the register in the first byte.
type registerFile struct {
	mem    [256]byte
	reads  int
	writes [][]byte
	err    error
}

func (f *registerFile) String() string {
	return "registerFile"
}

func (f *registerFile) Duplex() conn.Duplex {
	return conn.Half
}

func (f *registerFile) Tx(w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	if len(w) == 0 {
		return errors.New("registerFile: missing register address")
	}
	reg := int(w[0])
	if len(r) != 0 {
		if reg+len(r) > len(f.mem) {
			return fmt.Errorf("registerFile: read past end at %#x", reg)
		}
		f.reads++
		copy(r, f.mem[reg:])
		return nil
	}
	data := append([]byte(nil), w[1:]...)
	f.writes = append(f.writes, data)
	copy(f.mem[reg:], data)
	return nil
}

var _ conn.Conn = &registerFile{}
