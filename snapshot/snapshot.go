// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package snapshot draws the bars of a bargraph into an image, for example
// to keep a PNG of what a display was showing.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/ledbargraph/bargraph"
)

// Opts represents the options available to draw a snapshot.
type Opts struct {
	// BarWidth and BarHeight are in pixels. Default to 12 and 48.
	BarWidth  int
	BarHeight int
	// FontSize of the labels, in points. Defaults to 10.
	FontSize float64
	// Title is drawn above the bars when set.
	Title string
}

var DefaultOpts = Opts{BarWidth: 12, BarHeight: 48, FontSize: 10}

const padding = 8

// Render draws bars left to right, bar 0 first. Every fourth bar is
// numbered. A blinking display is marked with a caption.
func Render(bars [bargraph.Bars]bargraph.Color, blink bool, opts *Opts) (image.Image, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.BarWidth <= 0 {
		o.BarWidth = DefaultOpts.BarWidth
	}
	if o.BarHeight <= 0 {
		o.BarHeight = DefaultOpts.BarHeight
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultOpts.FontSize
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: o.FontSize})
	defer face.Close()

	line := o.FontSize * 1.5
	top := float64(padding)
	if o.Title != "" {
		top += line
	}
	w := 2*padding + len(bars)*o.BarWidth
	h := int(top+line) + o.BarHeight + 2*padding
	if blink {
		h += int(line)
	}

	dc := gg.NewContext(w, h)
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.Clear()

	dc.SetColor(color.White)
	if o.Title != "" {
		dc.DrawStringAnchored(o.Title, float64(w)/2, padding+line/2, 0.5, 0.5)
	}
	for i, c := range bars {
		x := float64(padding + i*o.BarWidth)
		dc.SetColor(c)
		dc.DrawRectangle(x+1, top, float64(o.BarWidth-2), float64(o.BarHeight))
		dc.Fill()
		if i%4 == 0 {
			dc.SetColor(color.White)
			dc.DrawStringAnchored(strconv.Itoa(i), x+float64(o.BarWidth)/2, top+float64(o.BarHeight)+line/2, 0.5, 0.5)
		}
	}
	if blink {
		dc.SetColor(bargraph.Red)
		dc.DrawStringAnchored("blinking", float64(w)/2, top+float64(o.BarHeight)+line*1.5, 0.5, 0.5)
	}
	return dc.Image(), nil
}

// WritePNG renders bars and encodes them as PNG into w.
func WritePNG(w io.Writer, bars [bargraph.Bars]bargraph.Color, blink bool, opts *Opts) error {
	img, err := Render(bars, blink, opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}
