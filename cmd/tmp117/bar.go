// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/physic"
)

// bar draws a one line thermometer on an ANSI terminal. Cells up to the
// current temperature are lit with a blue to red gradient.
type bar struct {
	w       io.Writer
	palette *ansi256.Palette
	min     float64
	max     float64
	cells   int
	buf     bytes.Buffer
}

func newBar(w io.Writer, cfg BarConfig) *bar {
	return &bar{w: w, palette: ansi256.Default, min: cfg.Min, max: cfg.Max, cells: cfg.Width}
}

// lit returns the number of cells lit for a temperature in °C.
func (b *bar) lit(c float64) int {
	n := int((c - b.min) / (b.max - b.min) * float64(b.cells))
	if n < 0 {
		return 0
	}
	if n > b.cells {
		return b.cells
	}
	return n
}

// cellColor returns the gradient color of cell i.
func (b *bar) cellColor(i int) color.NRGBA {
	r := byte(255 * i / b.cells)
	return color.NRGBA{R: r, G: 32, B: 255 - r, A: 255}
}

// Draw redraws the bar in place for t.
func (b *bar) Draw(t physic.Temperature) error {
	c := t.Celsius()
	n := b.lit(c)
	b.buf.Reset()
	_, _ = b.buf.WriteString("\r\033[0m")
	for i := 0; i < b.cells; i++ {
		cell := color.NRGBA{A: 255}
		if i < n {
			cell = b.cellColor(i)
		}
		_, _ = io.WriteString(&b.buf, b.palette.Block(cell))
	}
	_, _ = fmt.Fprintf(&b.buf, "\033[0m %7.3f°C", c)
	_, err := b.buf.WriteTo(b.w)
	return err
}

// Close ends the bar line and resets the terminal colors.
func (b *bar) Close() error {
	_, err := b.w.Write([]byte("\n\033[0m"))
	return err
}
