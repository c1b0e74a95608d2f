// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

// newLogger returns the tool's logger at the given level, 0 (panic) to 6
// (trace).
func newLogger(level int) *logrus.Entry {
	logrus.ErrorKey = "$error"
	logger := logrus.New()
	logger.SetOutput(colorable.NewColorableStderr())
	if level < int(logrus.PanicLevel) || level > int(logrus.TraceLevel) {
		level = int(logrus.InfoLevel)
	}
	logger.SetLevel(logrus.Level(level))
	customFormatter := new(prefixed.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	customFormatter.PrefixPadding = 10
	logger.SetFormatter(customFormatter)
	return logger.WithField("prefix", "tmp117")
}
