// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bargraph

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/GermanBionicSystems/ledbargraph/ht16k33"
	"github.com/GermanBionicSystems/ledbargraph/screen1d"
)

const (
	// Bars is the number of bars on the backpack.
	Bars = 24

	barsPerHalf = 12
	barsPerRow  = 4
	wiredRows   = 6
)

// BarLEDs returns the addresses of the red and green LEDs of bar (0-23).
//
// Bar 0 is at the bottom of the display.
func BarLEDs(bar int) (red, green int, err error) {
	if bar < 0 || bar >= Bars {
		return 0, 0, &ht16k33.AddressRangeError{Kind: "bar", Index: bar, Limit: Bars}
	}
	half, pos := bar/barsPerHalf, bar%barsPerHalf
	row := pos / barsPerRow * 2
	common := pos%barsPerRow + half*barsPerRow
	red = row*ht16k33.Commons + common
	green = (row+1)*ht16k33.Commons + common
	return red, green, nil
}

// Decode returns the color of every bar from a display buffer.
func Decode(buf [ht16k33.Rows]byte) [Bars]Color {
	var bars [Bars]Color
	for row := 0; row < wiredRows; row++ {
		c := Red
		if row%2 == 1 {
			c = Green
		}
		for bit := 0; bit < ht16k33.Commons; bit++ {
			if buf[row]&(1<<bit) == 0 {
				continue
			}
			half, common := bit/barsPerRow, bit%barsPerRow
			bar := half*barsPerHalf + row/2*barsPerRow + common
			bars[bar] = bars[bar].Merge(c)
		}
	}
	return bars
}

// Opts holds the optional configuration of a Dev.
type Opts struct {
	// Resolution is the number of bars used, counted from the bottom.
	// Defaults to Bars.
	Resolution int
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Dev is a bargraph drawn through an HT16K33. It keeps no display state of
// its own; every change goes to the driver's buffer.
type Dev struct {
	d          *ht16k33.Dev
	resolution int
	logger     zerolog.Logger
}

// New returns a bargraph on an initialized HT16K33.
func New(d *ht16k33.Dev, opts *Opts) (*Dev, error) {
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.Resolution == 0 {
		o.Resolution = Bars
	}
	if o.Resolution < 0 || o.Resolution > Bars {
		return nil, fmt.Errorf("bargraph: invalid resolution %d, must be between 1 and %d", o.Resolution, Bars)
	}
	logger := zerolog.Nop()
	if o.Logger != nil {
		logger = *o.Logger
	}
	return &Dev{d: d, resolution: o.Resolution, logger: logger.With().Str("dev", "bargraph").Logger()}, nil
}

// Resolution returns the number of bars in use.
func (b *Dev) Resolution() int {
	return b.resolution
}

// SetBar sets bar to c in the buffer. Call Flush, or Update, to display it.
func (b *Dev) SetBar(bar int, c Color) error {
	red, green, err := BarLEDs(bar)
	if err != nil {
		return err
	}
	if err := b.d.SetLED(green, c.HasGreen()); err != nil {
		return err
	}
	return b.d.SetLED(red, c.HasRed())
}

// Render draws value against rng into the buffer without touching the chip.
// It reports whether the display should blink, which happens when value is
// larger than rng.
func (b *Dev) Render(value, rng int) (bool, error) {
	if rng <= 0 || rng > b.resolution || value < 0 {
		return false, &LogicalRangeError{Value: value, Range: rng, Resolution: b.resolution}
	}
	b.d.Clear()

	blink := false
	if value > rng {
		b.logger.Warn().Int("value", value).Int("range", rng).Msg("value is greater than range, blinking display")
		value = rng
		blink = true
	}

	size := b.resolution / rng
	for segment := 0; segment < rng; segment++ {
		start := segment * size
		end := start + size - 1
		// The last segment takes the bars left over by the division.
		if segment == rng-1 {
			end = b.resolution - 1
		}
		body, top := Off, Green
		if segment < value {
			body, top = Yellow, Red
		}
		for bar := start; bar < end; bar++ {
			if err := b.SetBar(bar, body); err != nil {
				return false, err
			}
		}
		if err := b.SetBar(end, top); err != nil {
			return false, err
		}
	}
	b.logger.Trace().Int("value", value).Int("range", rng).Int("size", size).Msg("render")
	return blink, nil
}

// Update shows value against rng on the display. A value larger than rng is
// shown as a full bargraph blinking at 2Hz.
func (b *Dev) Update(value, rng int) (bool, error) {
	blink, err := b.Render(value, rng)
	if err != nil {
		return false, err
	}
	if err := b.d.WriteDisplay(); err != nil {
		return false, err
	}
	rate := ht16k33.BlinkOff
	if blink {
		rate = ht16k33.Blink2Hz
	}
	return blink, b.d.SetBlinkRate(rate)
}

// Flush writes the buffer to the chip.
func (b *Dev) Flush() error {
	return b.d.WriteDisplay()
}

// Clear turns every bar off and stops blinking.
func (b *Dev) Clear() error {
	b.d.Clear()
	if err := b.d.WriteDisplay(); err != nil {
		return err
	}
	return b.d.SetBlinkRate(ht16k33.BlinkOff)
}

// Bars returns the colors in the current buffer.
func (b *Dev) Bars() [Bars]Color {
	return Decode(b.d.Buffer())
}

// ReadBars reads the display RAM back from the chip and returns its colors.
func (b *Dev) ReadBars() ([Bars]Color, error) {
	if err := b.d.ReadDisplay(); err != nil {
		return [Bars]Color{}, err
	}
	return b.Bars(), nil
}

// Show reads the display back from the chip and draws it on w using ANSI
// colors. The drawing blinks when the display does. A nil w writes to
// stdout.
func (b *Dev) Show(w io.Writer) error {
	bars, err := b.ReadBars()
	if err != nil {
		return err
	}
	if !b.d.DisplayOn() {
		b.logger.Debug().Msg("display is off, not showing bars")
		bars = [Bars]Color{}
	}
	b.logger.Debug().Str("bars", fmt.Sprint(bars)).Msg("show")

	s := screen1d.New(&screen1d.Opts{X: Bars, W: w, Framed: true})
	s.SetBlink(b.d.BlinkRate() != ht16k33.BlinkOff)
	pixels := make([]byte, 0, 3*Bars)
	for _, c := range bars {
		n := rgb[c]
		pixels = append(pixels, n.R, n.G, n.B)
	}
	_, err = s.Write(pixels)
	return err
}

// Halt turns the display off. Implements conn.Resource.
func (b *Dev) Halt() error {
	return b.d.Halt()
}

func (b *Dev) String() string {
	return fmt.Sprintf("Bargraph{%s}", b.d)
}
