// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bargraph drives the Adafruit bi-color 24-bar bargraph backpack,
// an HT16K33 wired to 24 red/green LED pairs.
//
// Each bar is made of one red and one green LED; lighting both shows yellow.
// The bars are split into two halves of 12. Within a half, every group of 4
// bars shares a pair of rows (red on the even row, green on the odd one) and
// the second half uses commons 4 to 7 instead of 0 to 3. Only the first 6
// rows of the chip are wired.
//
// Update shows a value against a range: each of the range's segments spans
// Resolution/range bars, filled segments are yellow with a red top bar and
// empty ones are dark with a green top bar. A value above the range fills
// every segment and makes the display blink; the range is never rescaled.
//
// # Product
//
// https://www.adafruit.com/product/1721
package bargraph
