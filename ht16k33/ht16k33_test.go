// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht16k33

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/ledbargraph/ht16k33/ht16k33sim"
)

const addr = DefaultAddress

func initOps() []i2ctest.IO {
	return []i2ctest.IO{
		{Addr: addr, W: []byte{0x21}}, // Oscillator on
		{Addr: addr, W: []byte{0x81}}, // Display on, no blink
		{Addr: addr, W: []byte{0xef}}, // Brightness 15
	}
}

func newDev(b i2c.Bus) *Dev {
	return New(&i2c.Dev{Bus: b, Addr: addr}, nil)
}

func TestInit(t *testing.T) {
	bus := &i2ctest.Playback{Ops: initOps(), DontPanic: true}
	dev, err := NewI2C(bus, addr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
	if !dev.DisplayOn() || dev.BlinkRate() != BlinkOff || dev.Brightness() != MaxBrightness {
		t.Errorf("unexpected state on=%t blink=%s brightness=%d", dev.DisplayOn(), dev.BlinkRate(), dev.Brightness())
	}
	if s := dev.String(); len(s) == 0 {
		t.Error("invalid String() result")
	}
}

func TestInitFailure(t *testing.T) {
	bus := ht16k33sim.New(addr)
	bus.Fail = errors.New("nack")
	bus.FailAfter = 1
	_, err := NewI2C(bus, addr, nil)
	var de *DeviceError
	if !errors.As(err, &de) {
		t.Fatalf("expected DeviceError, got %v", err)
	}
	if de.Op != "blink" || !errors.Is(err, bus.Fail) {
		t.Errorf("unexpected error %v", err)
	}
	if !bus.Oscillator || bus.DisplayOn {
		t.Error("expected partial initialization to be left in place")
	}
}

func TestSetBlinkRate(t *testing.T) {
	tests := []struct {
		rate BlinkRate
		cmd  byte
		freq physic.Frequency
	}{
		{BlinkOff, 0x81, 0},
		{Blink2Hz, 0x83, 2 * physic.Hertz},
		{Blink1Hz, 0x85, physic.Hertz},
		{BlinkHalfHz, 0x87, 500 * physic.MilliHertz},
	}
	for _, test := range tests {
		bus := &i2ctest.Playback{Ops: []i2ctest.IO{{Addr: addr, W: []byte{test.cmd}}}, DontPanic: true}
		dev := newDev(bus)
		if err := dev.SetBlinkRate(test.rate); err != nil {
			t.Errorf("SetBlinkRate(%s): %v", test.rate, err)
		}
		if err := bus.Close(); err != nil {
			t.Error(err)
		}
		if dev.BlinkRate() != test.rate {
			t.Errorf("BlinkRate() = %s, expected %s", dev.BlinkRate(), test.rate)
		}
		if f := test.rate.Frequency(); f != test.freq {
			t.Errorf("%d.Frequency() = %s, expected %s", test.rate, f, test.freq)
		}
	}

	dev := newDev(&i2ctest.Playback{DontPanic: true})
	var ae *ArgumentError
	if err := dev.SetBlinkRate(4); !errors.As(err, &ae) {
		t.Errorf("expected ArgumentError, got %v", err)
	}
}

func TestSetBrightness(t *testing.T) {
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: addr, W: []byte{0xe0}},
		{Addr: addr, W: []byte{0xe7}},
	}, DontPanic: true}
	dev := newDev(bus)
	for _, level := range []uint8{0, 7} {
		if err := dev.SetBrightness(level); err != nil {
			t.Error(err)
		}
	}
	var ae *ArgumentError
	if err := dev.SetBrightness(16); !errors.As(err, &ae) {
		t.Errorf("expected ArgumentError, got %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
	if dev.Brightness() != 7 {
		t.Errorf("Brightness() = %d", dev.Brightness())
	}
}

func TestSetLED(t *testing.T) {
	dev := newDev(&i2ctest.Playback{DontPanic: true})
	if err := dev.SetLED(11, true); err != nil {
		t.Fatal(err)
	}
	want := [Rows]byte{1: 0x08}
	if diff := cmp.Diff(want, dev.Buffer()); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
	if on, _ := dev.LED(11); !on {
		t.Error("LED(11) should be on")
	}

	if err := dev.SetLED(12, true); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetLED(11, false); err != nil {
		t.Fatal(err)
	}
	want = [Rows]byte{1: 0x10}
	if diff := cmp.Diff(want, dev.Buffer()); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}

	if err := dev.SetLED(127, true); err != nil {
		t.Fatal(err)
	}
	if b := dev.Buffer(); b[15] != 0x80 {
		t.Errorf("row 15 = %#02x", b[15])
	}

	for _, a := range []int{-1, LEDs} {
		var are *AddressRangeError
		if err := dev.SetLED(a, true); !errors.As(err, &are) {
			t.Errorf("SetLED(%d): expected AddressRangeError, got %v", a, err)
		}
		if _, err := dev.LED(a); !errors.As(err, &are) {
			t.Errorf("LED(%d): expected AddressRangeError, got %v", a, err)
		}
	}
}

func TestClear(t *testing.T) {
	dev := newDev(&i2ctest.Playback{DontPanic: true})
	for a := 0; a < LEDs; a += 3 {
		_ = dev.SetLED(a, true)
	}
	dev.Clear()
	if diff := cmp.Diff([Rows]byte{}, dev.Buffer()); diff != "" {
		t.Errorf("buffer not cleared:\n%s", diff)
	}
}

func TestWriteDisplay(t *testing.T) {
	var ops []i2ctest.IO
	for row := 0; row < Rows; row++ {
		ops = append(ops, i2ctest.IO{Addr: addr, W: []byte{byte(row), byte(row * 3)}})
	}
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	dev := newDev(bus)
	for row := 0; row < Rows; row++ {
		dev.buf[row] = byte(row * 3)
	}
	if err := dev.WriteDisplay(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
}

func TestWriteDisplayStopsOnError(t *testing.T) {
	bus := ht16k33sim.New(addr)
	dev := newDev(bus)
	for row := 0; row < Rows; row++ {
		dev.buf[row] = 0xff
	}
	bus.Fail = errors.New("bus error")
	bus.FailAfter = 5
	err := dev.WriteDisplay()
	var de *DeviceError
	if !errors.As(err, &de) || de.Op != "write row 5" {
		t.Fatalf("unexpected error %v", err)
	}
	want := [16]byte{0xff, 0xff, 0xff, 0xff, 0xff}
	if diff := cmp.Diff(want, bus.RAM); diff != "" {
		t.Errorf("RAM mismatch (-want +got):\n%s", diff)
	}
	if bus.Count != 6 {
		t.Errorf("expected 6 transactions, got %d", bus.Count)
	}
}

func TestReadDisplay(t *testing.T) {
	ram := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{{Addr: addr, W: []byte{0x00}, R: ram}}, DontPanic: true}
	dev := newDev(bus)
	_ = dev.SetLED(0, true)
	if err := dev.ReadDisplay(); err != nil {
		t.Fatal(err)
	}
	b := dev.Buffer()
	if diff := cmp.Diff(ram, b[:]); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}

	// The buffer is kept on failure.
	if err := dev.ReadDisplay(); err == nil {
		t.Fatal("expected an error")
	}
	if dev.Buffer() != b {
		t.Error("buffer changed on failed read")
	}
}

func TestHalt(t *testing.T) {
	bus := ht16k33sim.New(addr)
	dev, err := NewI2C(bus, addr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.SetBlinkRate(Blink1Hz); err != nil {
		t.Fatal(err)
	}
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if bus.DisplayOn || dev.DisplayOn() || dev.BlinkRate() != BlinkOff {
		t.Error("display should be off")
	}
}

func TestRoundTrip(t *testing.T) {
	bus := ht16k33sim.New(addr)
	dev, err := NewI2C(bus, addr, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range []int{0, 9, 18, 27, 36, 45, 54, 63, 72, 127} {
		_ = dev.SetLED(a, true)
	}
	want := dev.Buffer()
	if err := dev.WriteDisplay(); err != nil {
		t.Fatal(err)
	}
	dev.Clear()
	if err := dev.ReadDisplay(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, dev.Buffer()); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestBlinkRateString(t *testing.T) {
	for r, want := range map[BlinkRate]string{BlinkOff: "Off", Blink2Hz: "2Hz", BlinkRate(9): "BlinkRate(9)"} {
		if s := r.String(); s != want {
			t.Errorf("String() = %q, expected %q", s, want)
		}
	}
}
