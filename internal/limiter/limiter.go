// Package limiter windows the data rows of a loaded CSV before the table is
// built (--limit, --offset, --tail).
package limiter

import (
	"fmt"
)

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int // Show only this many rows (0 = unlimited)
	Offset int // Skip the first N rows (0 = no skip)
	Tail   int // Show only the last N rows (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}

	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}

	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Window returns the [start, end) bounds of the rows kept out of length.
func (c Config) Window(length int) (start, end int) {
	if c.Tail > 0 {
		return max(length-c.Tail, 0), length
	}

	start = min(c.Offset, length)
	end = length
	if c.Limit > 0 {
		end = min(start+c.Limit, length)
	}
	return start, end
}

// Apply returns the window of rows selected by the config. The header row is
// not part of rows and is never limited.
func Apply[T any](c Config, rows []T) []T {
	if !c.IsActive() {
		return rows
	}
	start, end := c.Window(len(rows))
	return rows[start:end]
}

func (c Config) String() string {
	return fmt.Sprintf("limit=%d offset=%d tail=%d", c.Limit, c.Offset, c.Tail)
}
