// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package devices is a container for the TMP117 temperature sensor driver,
// the register accessors it is built on and its command line tool.
//
// See the tmp117, common and cmd/tmp117 packages.
package devices
