// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledbargraph is a container for the drivers of the Adafruit bi-color
// 24-bar bargraph.
//
// ht16k33 drives the controller, bargraph maps bars and values onto it,
// screen1d and snapshot mirror it on a terminal or as an image, and
// cmd/led-bargraph exposes it all from the command line.
package ledbargraph
