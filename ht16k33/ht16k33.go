// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht16k33

import (
	"fmt"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// BlinkRate is the frequency at which the whole display flashes.
type BlinkRate uint8

const (
	BlinkOff BlinkRate = iota
	Blink2Hz
	Blink1Hz
	BlinkHalfHz
)

const (
	// DefaultAddress is the I²C address with no address jumpers set.
	DefaultAddress uint16 = 0x70

	// Rows is the size of the display RAM in bytes.
	Rows = 16
	// Commons is the number of bits used in each row.
	Commons = 8
	// LEDs is the number of addressable LEDs.
	LEDs = Rows * Commons

	// MaxBrightness is the highest of the 16 dimming levels.
	MaxBrightness uint8 = 15

	_CMD_SYSTEM_SETUP byte = 0x20
	_OSCILLATOR_ON    byte = 0x01
	_CMD_BLINK        byte = 0x80
	_DISPLAY_ON       byte = 0x01
	_CMD_BRIGHTNESS   byte = 0xE0
	_DISPLAY_RAM      byte = 0x00
)

// Frequency returns the blink frequency, 0 when blinking is off.
func (r BlinkRate) Frequency() physic.Frequency {
	switch r {
	case Blink2Hz:
		return 2 * physic.Hertz
	case Blink1Hz:
		return physic.Hertz
	case BlinkHalfHz:
		return 500 * physic.MilliHertz
	default:
		return 0
	}
}

func (r BlinkRate) String() string {
	switch r {
	case BlinkOff:
		return "Off"
	case Blink2Hz, Blink1Hz, BlinkHalfHz:
		return r.Frequency().String()
	default:
		return fmt.Sprintf("BlinkRate(%d)", uint8(r))
	}
}

// Opts holds the optional configuration of a Dev.
type Opts struct {
	// Logger receives bus level tracing. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Dev is a handle to an HT16K33 chip and its display buffer.
type Dev struct {
	c      conn.Conn
	buf    [Rows]byte
	logger zerolog.Logger

	// State last written to the chip.
	on         bool
	blink      BlinkRate
	brightness uint8
}

// New returns a Dev talking to the chip over c. No I/O is done; call Init
// before using the display.
func New(c conn.Conn, opts *Opts) *Dev {
	logger := zerolog.Nop()
	if opts != nil && opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Dev{c: c, logger: logger.With().Str("dev", "ht16k33").Logger()}
}

// NewI2C returns an initialized Dev on the I²C bus at addr.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	d := New(&i2c.Dev{Bus: b, Addr: addr}, opts)
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Init enables the oscillator, turns the display on without blinking and
// sets the maximum brightness.
//
// A failure leaves the chip partially configured and the Dev should not be
// used.
func (d *Dev) Init() error {
	d.logger.Debug().Msg("init")
	if err := d.command("system setup", _CMD_SYSTEM_SETUP|_OSCILLATOR_ON); err != nil {
		return err
	}
	if err := d.SetBlinkRate(BlinkOff); err != nil {
		return err
	}
	return d.SetBrightness(MaxBrightness)
}

// SetBlinkRate turns the display on and sets its blink rate.
func (d *Dev) SetBlinkRate(r BlinkRate) error {
	if r > BlinkHalfHz {
		return &ArgumentError{Name: "blink rate", Value: int(r)}
	}
	if err := d.command("blink", _CMD_BLINK|_DISPLAY_ON|byte(r)<<1); err != nil {
		return err
	}
	d.on = true
	d.blink = r
	return nil
}

// SetBrightness sets the dimming level of the whole display, from 0 to
// MaxBrightness.
func (d *Dev) SetBrightness(level uint8) error {
	if level > MaxBrightness {
		return &ArgumentError{Name: "brightness", Value: int(level)}
	}
	if err := d.command("brightness", _CMD_BRIGHTNESS|level); err != nil {
		return err
	}
	d.brightness = level
	return nil
}

// SetLED turns the LED at addr (0-127) on or off in the buffer.
func (d *Dev) SetLED(addr int, on bool) error {
	if addr < 0 || addr >= LEDs {
		return &AddressRangeError{Kind: "led", Index: addr, Limit: LEDs}
	}
	row, bit := addr/Commons, addr%Commons
	if on {
		d.buf[row] |= 1 << bit
	} else {
		d.buf[row] &^= 1 << bit
	}
	return nil
}

// LED reports whether the LED at addr is on in the buffer.
func (d *Dev) LED(addr int) (bool, error) {
	if addr < 0 || addr >= LEDs {
		return false, &AddressRangeError{Kind: "led", Index: addr, Limit: LEDs}
	}
	return d.buf[addr/Commons]&(1<<(addr%Commons)) != 0, nil
}

// Clear turns off every LED in the buffer.
func (d *Dev) Clear() {
	d.buf = [Rows]byte{}
}

// Buffer returns a copy of the display buffer.
func (d *Dev) Buffer() [Rows]byte {
	return d.buf
}

// WriteDisplay flushes the buffer to the chip, one row at a time. Rows after
// a failed write are not sent.
func (d *Dev) WriteDisplay() error {
	for row, v := range d.buf {
		if err := d.c.Tx([]byte{_DISPLAY_RAM + byte(row), v}, nil); err != nil {
			return &DeviceError{Op: fmt.Sprintf("write row %d", row), Err: err}
		}
	}
	d.logger.Trace().Hex("buffer", d.buf[:]).Msg("write display")
	return nil
}

// ReadDisplay replaces the buffer with the display RAM of the chip.
func (d *Dev) ReadDisplay() error {
	var r [Rows]byte
	if err := d.c.Tx([]byte{_DISPLAY_RAM}, r[:]); err != nil {
		return &DeviceError{Op: "read display", Err: err}
	}
	d.buf = r
	d.logger.Trace().Hex("buffer", d.buf[:]).Msg("read display")
	return nil
}

// BlinkRate returns the last blink rate set.
func (d *Dev) BlinkRate() BlinkRate {
	return d.blink
}

// Brightness returns the last brightness level set.
func (d *Dev) Brightness() uint8 {
	return d.brightness
}

// DisplayOn reports whether the display was turned on.
func (d *Dev) DisplayOn() bool {
	return d.on
}

// Halt turns the display off. The display RAM is kept. Implements
// conn.Resource.
func (d *Dev) Halt() error {
	if err := d.command("display off", _CMD_BLINK); err != nil {
		return err
	}
	d.on = false
	d.blink = BlinkOff
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("HT16K33{%s}", d.c)
}

func (d *Dev) command(op string, cmd byte) error {
	d.logger.Trace().Str("op", op).Hex("cmd", []byte{cmd}).Msg("command")
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return &DeviceError{Op: op, Err: err}
	}
	return nil
}

var _ conn.Resource = &Dev{}
