package pattern

import (
	"fmt"

	"github.com/leapstack-labs/leapverb/pkg/token"
)

// CompileError represents a malformed rule pattern.
type CompileError struct {
	Pattern string
	Pos     token.Position
	Message string
}

func (e *CompileError) Error() string {
	if !e.Pos.IsValid() {
		return fmt.Sprintf("pattern error in %q: %s", e.Pattern, e.Message)
	}
	return fmt.Sprintf("pattern error at column %d in %q: %s", e.Pos.Column, e.Pattern, e.Message)
}

// Common error messages
const (
	ErrUnterminatedQuote = "unterminated quoted span"
)
