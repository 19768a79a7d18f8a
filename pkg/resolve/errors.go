package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapverb/pkg/world"
)

// Resolution failures. Resolvers wrap these so callers can use errors.Is.
var (
	ErrNoMatchingReference = errors.New("no matching reference")
	ErrAmbiguousReference  = errors.New("ambiguous reference")
	ErrNoInput             = errors.New("no input left")
	ErrNotADirection       = errors.New("not a direction")
	ErrNotANumber          = errors.New("not a number")
)

// ReferenceError describes a failed entity reference.
type ReferenceError struct {
	Err        error          // ErrNoMatchingReference or ErrAmbiguousReference
	Words      []string       // input words involved
	Candidates []world.Entity // tied candidates, for ambiguity
}

func (e *ReferenceError) Error() string {
	words := strings.Join(e.Words, " ")
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("%v %q: %d candidates", e.Err, words, len(e.Candidates))
	}
	if words == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v %q", e.Err, words)
}

func (e *ReferenceError) Unwrap() error { return e.Err }
