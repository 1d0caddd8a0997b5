// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package expr

import "errors"

// ErrDivisionByZero indicates a division node whose right subtree
// evaluates to exactly zero. Candidate screening treats it as an
// ordinary rejection; from an accepted tree it means an acceptance
// constraint was bypassed.
var ErrDivisionByZero = errors.New("division by zero")
