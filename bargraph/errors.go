// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bargraph

import "fmt"

// LogicalRangeError is returned when a value cannot be shown against a
// range on a display of the given resolution.
type LogicalRangeError struct {
	Value      int
	Range      int
	Resolution int
}

func (e *LogicalRangeError) Error() string {
	return fmt.Sprintf("bargraph: cannot show %d of %d on %d bars", e.Value, e.Range, e.Resolution)
}
