// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ht16k33 controls a Holtek HT16K33 16x8 LED matrix driver.
//
// The chip exposes 16 bytes of display RAM. Each byte is a "row" and each
// bit within it a "common", giving 128 individually addressable LEDs. LED
// address n maps to row n/8, bit n%8.
//
// Changes made with SetLED and Clear only affect the in-memory buffer;
// WriteDisplay flushes it to the chip.
//
// A Dev is not safe for concurrent use.
//
// # Datasheet
//
// https://www.holtek.com/webapi/116711/HT16K33Av102.pdf
package ht16k33
