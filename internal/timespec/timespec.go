// Copyright 2026 Ghiscrape Authors
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package timespec parses the --since argument into an absolute instant.
// A value is either a full timestamp ("2024-06-01T00:00:00Z", "2024-06-01")
// or a relative offset like "2w", "3d", "12h", "45M" subtracted from the
// current wall-clock time.
package timespec

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	gherrors "github.com/ghiscrape/ghiscrape/internal/errors"
)

// Absolute layouts tried in order before falling back to the relative grammar.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// relative matches offsets of the form <digits><unit>. Units: w (weeks),
// d (days), h or H (hours), M (minutes).
var relative = regexp.MustCompile(`^(\d+)([wdhHM])$`)

// Parse converts a since string into an absolute instant, using the current
// time as the anchor for relative offsets.
func Parse(s string) (time.Time, error) {
	return ParseAt(s, time.Now())
}

// ParseAt is like Parse but computes relative offsets against the provided
// now, which makes the relative path deterministic in tests.
func ParseAt(s string, now time.Time) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	m := relative.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%q is not a valid date: %w", s, gherrors.ErrInvalidSince)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a valid date: %w", s, gherrors.ErrInvalidSince)
	}

	var unit time.Duration
	switch m[2] {
	case "w":
		unit = 7 * 24 * time.Hour
	case "d":
		unit = 24 * time.Hour
	case "h", "H":
		unit = time.Hour
	case "M":
		unit = time.Minute
	}

	return now.Add(-time.Duration(n) * unit), nil
}
