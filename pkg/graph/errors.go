package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is matched by every [*FormatError] via errors.Is.
var ErrInvalidFormat = errors.New("graph: invalid line format")

// FormatError reports a graph line without a parseable leading vertex id.
type FormatError struct {
	Line int    // 1-based line number
	Text string // Offending line
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format at line %d: %q", e.Line, e.Text)
}

// Is lets errors.Is(err, ErrInvalidFormat) match any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}
