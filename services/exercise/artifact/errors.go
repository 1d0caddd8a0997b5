// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package artifact

import "errors"

// ErrNotFound indicates a requested artifact file does not exist. Grading
// treats this as fatal: no partial output is produced for missing inputs.
var ErrNotFound = errors.New("artifact not found")
