// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// tmp117 provides a package for interfacing a Texas Instruments TMP117 I2C
// high accuracy digital temperature sensor.
//
// Range: -55°C - 150°C
//
// Accuracy: +/- 0.1°C from -20°C to 50°C
//
// Resolution: 0.0078125°C
//
// Construction checks the device ID, issues a soft reset, selects continuous
// conversion mode and waits for the first conversion to complete. Every
// accessor afterwards is a live register transaction; nothing is cached.
//
// For detailed information, refer to the [datasheet].
//
// A command line tool is available in cmd/tmp117.
//
// [datasheet]: https://www.ti.com/lit/ds/symlink/tmp117.pdf
package tmp117
