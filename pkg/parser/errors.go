package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapverb/pkg/token"
)

// Reason classifies why a rule attempt failed.
type Reason int

// Match failure reasons.
const (
	ReasonLiteralMismatch Reason = iota + 1
	ReasonInputExhausted
	ReasonUnregisteredSymbol
	ReasonResolverFailed
	ReasonTrailingInput
)

func (r Reason) String() string {
	switch r {
	case ReasonLiteralMismatch:
		return "literal mismatch"
	case ReasonInputExhausted:
		return "input exhausted"
	case ReasonUnregisteredSymbol:
		return "unregistered symbol"
	case ReasonResolverFailed:
		return "resolver failed"
	case ReasonTrailingInput:
		return "trailing input"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// MatchError explains a failed rule attempt. It never escapes Parse as a
// failure of the whole operation; it is collected as a diagnostic.
type MatchError struct {
	Reason Reason
	Token  token.Token // rule token being matched, zero for trailing input
	Word   string      // offending input word, if any
	Pos    int         // index of the offending input word
	Err    error       // resolver error for ReasonResolverFailed
}

func (e *MatchError) Error() string {
	switch e.Reason {
	case ReasonLiteralMismatch:
		return fmt.Sprintf(ErrLiteralMismatch, e.Token, e.Word, e.Pos)
	case ReasonInputExhausted:
		return fmt.Sprintf(ErrInputExhausted, e.Token)
	case ReasonUnregisteredSymbol:
		return fmt.Sprintf(ErrUnregisteredSymbol, e.Token.Value)
	case ReasonResolverFailed:
		return fmt.Sprintf(ErrResolverFailed, e.Token.Value, e.Err)
	case ReasonTrailingInput:
		return fmt.Sprintf(ErrTrailingInput, e.Word, e.Pos)
	default:
		return e.Reason.String()
	}
}

func (e *MatchError) Unwrap() error { return e.Err }

// Common error messages
const (
	ErrLiteralMismatch    = "expected %s, got %q at word %d"
	ErrInputExhausted     = "expected %s, got end of input"
	ErrUnregisteredSymbol = "no resolver registered for symbol %q"
	ErrResolverFailed     = "symbol %q: %v"
	ErrTrailingInput      = "unexpected %q at word %d"
	ErrCursorRewound      = "resolver moved the cursor backwards"
)
