// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp117

import (
	"github.com/GermanBionicSystems/tmp117/common"
)

// Addresses of registers to read/write.
const (
	_REGISTER_TEMP_RESULT   uint8 = 0x00
	_REGISTER_CONFIGURATION uint8 = 0x01
	_REGISTER_THIGH_LIMIT   uint8 = 0x02
	_REGISTER_TLOW_LIMIT    uint8 = 0x03
	_REGISTER_TEMP_OFFSET   uint8 = 0x07
	_REGISTER_DEVICE_ID     uint8 = 0x0f
)

// Whole registers.
var (
	deviceID       = common.NewRegister(_REGISTER_DEVICE_ID, common.Uint16)
	configuration  = common.NewRegister(_REGISTER_CONFIGURATION, common.Uint16)
	rawTemperature = common.NewRegister(_REGISTER_TEMP_RESULT, common.Int16)
	rawHighLimit   = common.NewRegister(_REGISTER_THIGH_LIMIT, common.Int16)
	rawLowLimit    = common.NewRegister(_REGISTER_TLOW_LIMIT, common.Int16)
	rawOffset      = common.NewRegister(_REGISTER_TEMP_OFFSET, common.Int16)
)

// Configuration register (0x01) layout:
//
//	HIGH_Alert|LOW_Alert|Data_Ready|EEPROM_Busy|MOD1|MOD0|CONV2|CONV1
//	CONV0     |AVG1     |AVG0      |T/nA       |POL |DR/Alert|Soft_Reset|-
var (
	highAlert       = common.NewBitField(_REGISTER_CONFIGURATION, 1, 15, 2, common.MSBFirst)
	lowAlert        = common.NewBitField(_REGISTER_CONFIGURATION, 1, 14, 2, common.MSBFirst)
	dataReady       = common.NewBitField(_REGISTER_CONFIGURATION, 1, 13, 2, common.MSBFirst)
	mode            = common.NewBitField(_REGISTER_CONFIGURATION, 2, 10, 2, common.MSBFirst)
	conversionCycle = common.NewBitField(_REGISTER_CONFIGURATION, 3, 7, 2, common.MSBFirst)
	averaging       = common.NewBitField(_REGISTER_CONFIGURATION, 2, 5, 2, common.MSBFirst)
	thermAlert      = common.NewBitField(_REGISTER_CONFIGURATION, 1, 4, 2, common.MSBFirst)
	softReset       = common.NewBitField(_REGISTER_CONFIGURATION, 1, 1, 2, common.MSBFirst)
)

// Full width writers for the 16 bit temperature registers. Register.Write
// only puts a single byte on the bus.
var (
	highLimitWord = common.NewBitField(_REGISTER_THIGH_LIMIT, 16, 0, 2, common.MSBFirst)
	lowLimitWord  = common.NewBitField(_REGISTER_TLOW_LIMIT, 16, 0, 2, common.MSBFirst)
	offsetWord    = common.NewBitField(_REGISTER_TEMP_OFFSET, 16, 0, 2, common.MSBFirst)
)

// Device ID register (0x0f): revision in bits 15:12, device ID in 11:0.
var revision = common.NewBitField(_REGISTER_DEVICE_ID, 4, 12, 2, common.MSBFirst)
