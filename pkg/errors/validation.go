package errors

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseVertexID parses a vertex id token supplied by a user (command-line
// argument or query parameter).
//
// The validation rules mirror the graph input format:
//   - No empty tokens
//   - Optional leading sign followed by decimal digits only
//   - Value must fit a signed 32-bit integer
func ParseVertexID(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, New(ErrCodeInvalidArgument, "start vertex cannot be empty")
	}

	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, New(ErrCodeInvalidArgument, "start vertex %s is out of range [%d, %d]", tok, math.MinInt32, math.MaxInt32)
		}
		return 0, New(ErrCodeInvalidArgument, "start vertex %q is not an integer", tok)
	}
	return int(v), nil
}

// ValidatePath validates an input or output file path supplied on the
// command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidArgument, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidArgument, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "path contains invalid characters")
		}
	}

	return nil
}
