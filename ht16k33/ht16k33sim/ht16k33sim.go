// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ht16k33sim implements an in-memory HT16K33 behind an i2c.Bus.
//
// It decodes the command set the chip understands (system setup, display
// setup, dimming and display RAM access) and keeps the resulting state so
// that a driver can be exercised without hardware.
package ht16k33sim

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const ramSize = 16

// Bus is a simulated I²C bus with a single HT16K33 attached at Addr.
type Bus struct {
	sync.Mutex
	Addr uint16

	// Chip state.
	RAM        [ramSize]byte
	Oscillator bool
	DisplayOn  bool
	Blink      uint8
	Brightness uint8

	// Fail, when set, is returned by every Tx once Count reaches FailAfter.
	Fail      error
	FailAfter int
	// Count is the number of transactions seen so far.
	Count int
}

// New returns a Bus with a chip in its power-on state at addr.
func New(addr uint16) *Bus {
	return &Bus{Addr: addr}
}

func (b *Bus) String() string {
	return fmt.Sprintf("ht16k33sim(%#x)", b.Addr)
}

// SetSpeed implements i2c.Bus.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return nil
}

// Close implements i2c.BusCloser.
func (b *Bus) Close() error {
	return nil
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.Lock()
	defer b.Unlock()
	n := b.Count
	b.Count++
	if b.Fail != nil && n >= b.FailAfter {
		return b.Fail
	}
	if addr != b.Addr {
		return fmt.Errorf("ht16k33sim: no device at %#x", addr)
	}
	if len(w) == 0 {
		return errors.New("ht16k33sim: empty write")
	}
	cmd := w[0]
	switch cmd & 0xF0 {
	case 0x00:
		ptr := int(cmd & 0x0F)
		for _, v := range w[1:] {
			b.RAM[ptr%ramSize] = v
			ptr++
		}
		for i := range r {
			r[i] = b.RAM[ptr%ramSize]
			ptr++
		}
		return nil
	case 0x20:
		b.Oscillator = cmd&0x01 != 0
	case 0x80:
		b.DisplayOn = cmd&0x01 != 0
		b.Blink = (cmd >> 1) & 0x03
	case 0xE0:
		b.Brightness = cmd & 0x0F
	default:
		return fmt.Errorf("ht16k33sim: unknown command %#02x", cmd)
	}
	if len(w) > 1 || len(r) != 0 {
		return fmt.Errorf("ht16k33sim: command %#02x takes no data", cmd)
	}
	return nil
}

var _ i2c.BusCloser = &Bus{}
