// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bargraph

import (
	"fmt"
	"image/color"
)

// Color is the state of a bar, a bit mask of its green (bit 0) and red
// (bit 1) LEDs.
//
// Color implements color.Color with the color the bar appears as.
type Color uint8

const (
	Off    Color = 0
	Green  Color = 1
	Red    Color = 2
	Yellow Color = Green | Red
)

// HasGreen reports whether the green LED is lit.
func (c Color) HasGreen() bool {
	return c&Green != 0
}

// HasRed reports whether the red LED is lit.
func (c Color) HasRed() bool {
	return c&Red != 0
}

// Merge combines the LEDs lit in c and o.
func (c Color) Merge(o Color) Color {
	return (c | o) & Yellow
}

func (c Color) String() string {
	switch c {
	case Off:
		return "Off"
	case Green:
		return "Green"
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// Off is rendered dark grey so that unlit bars stay visible.
var rgb = [...]color.NRGBA{
	Off:    {0x44, 0x44, 0x44, 0xff},
	Green:  {0x00, 0xff, 0x00, 0xff},
	Red:    {0xff, 0x00, 0x00, 0xff},
	Yellow: {0xff, 0xff, 0x00, 0xff},
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return rgb[c&Yellow].RGBA()
}

var _ color.Color = Off
