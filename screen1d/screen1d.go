// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen1d implements a 1D display.Drawer that outputs to a terminal
// using ANSI color codes.
//
// It is used to mirror LED bars on screen, either as a single line that is
// redrawn in place or framed in a box.
package screen1d

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

const (
	ansiReset = "\033[0m"
	ansiBlink = "\033[5m"
)

// Opts represents the options available for this display.
type Opts struct {
	X       int
	Palette *ansi256.Palette
	// W receives the output. Defaults to stdout, translated for the
	// terminal in use.
	W io.Writer
	// Framed draws a box around the pixels and ends every refresh with a
	// new line, instead of redrawing the same line.
	Framed bool

	_ struct{}
}

// Dev is a 1D LED strip emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	l       int
	palette ansi256.Palette
	framed  bool
	blink   bool

	pixels []byte
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:       w,
		l:       opts.X,
		palette: *p,
		framed:  opts.Framed,
		pixels:  make([]byte, 3*opts.X),
	}
	return d
}

func (d *Dev) String() string {
	return "Screen1D"
}

// SetBlink makes the following refreshes blink.
func (d *Dev) SetBlink(on bool) {
	d.blink = on
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := io.WriteString(d.w, "\n"+ansiReset)
	return err
}

// Write accepts a stream of raw RGB pixels and writes it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels)%3 != 0 {
		return 0, errors.New("screen1d: invalid RGB stream length")
	}
	copy(d.pixels, pixels)
	return d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: d.l, Y: 1}}
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	deltaX3 := 3 * (r.Min.X - srcR.Min.X)
	for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
		c := color.NRGBAModel.Convert(src.At(sX, srcR.Min.Y)).(color.NRGBA)
		dX3 := 3*sX + deltaX3
		d.pixels[dX3] = c.R
		d.pixels[dX3+1] = c.G
		d.pixels[dX3+2] = c.B
	}
	_, err := d.refresh()
	return err
}

func (d *Dev) refresh() (int, error) {
	d.buf.Reset()
	if d.framed {
		fmt.Fprintf(&d.buf, "╔%s╗\n║", strings.Repeat("═", d.l))
	} else {
		_, _ = d.buf.WriteString("\r" + ansiReset)
	}
	if d.blink {
		_, _ = d.buf.WriteString(ansiBlink)
	}
	for i := 0; i < len(d.pixels)/3; i++ {
		c := color.NRGBA{d.pixels[3*i], d.pixels[3*i+1], d.pixels[3*i+2], 255}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString(ansiReset)
	if d.framed {
		fmt.Fprintf(&d.buf, "║\n╚%s╝\n", strings.Repeat("═", d.l))
	} else {
		_, _ = d.buf.WriteString(" ")
	}
	_, err := d.buf.WriteTo(d.w)
	return len(d.pixels), err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
