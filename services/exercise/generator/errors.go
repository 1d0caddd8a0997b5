// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import "errors"

var (
	// ErrInvalidRange indicates the range bound is below 1. Leaves are drawn
	// from [0, r-1], so there is no value to draw for r < 1.
	ErrInvalidRange = errors.New("range bound must be >= 1")

	// ErrInvalidCount indicates the requested problem count is below 1.
	ErrInvalidCount = errors.New("problem count must be >= 1")
)
