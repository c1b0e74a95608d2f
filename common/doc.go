// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains register access helpers used by the device drivers
// in this repository.
//
// Two descriptors are provided. A BitField describes a run of bits inside a
// multi-byte register window and supports read-modify-write of that run
// without disturbing the other bits of the window. A Register describes a
// whole register decoded as one or more big-endian integers.
//
// Descriptors are plain values meant to be declared once as package level
// variables describing a chip's register map. They hold no state; every Read
// and Write is a live bus transaction on the conn.Conn passed in, normally an
// *i2c.Dev bound to the device address.
package common
