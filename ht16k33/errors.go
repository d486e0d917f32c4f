// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht16k33

import "fmt"

// DeviceError is returned when a bus transaction with the chip fails.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("ht16k33: %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// AddressRangeError is returned for an LED or bar index outside of
// [0, Limit).
type AddressRangeError struct {
	Kind  string
	Index int
	Limit int
}

func (e *AddressRangeError) Error() string {
	return fmt.Sprintf("ht16k33: %s %d out of range [0, %d)", e.Kind, e.Index, e.Limit)
}

// ArgumentError is returned for a brightness or blink rate the chip does not
// support.
type ArgumentError struct {
	Name  string
	Value int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("ht16k33: invalid %s %d", e.Name, e.Value)
}
