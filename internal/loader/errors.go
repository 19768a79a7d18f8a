package loader

import "fmt"

// ParseError reports a malformed grammar or world file.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		if e.Line > 0 {
			return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
		}
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// UnknownFieldError reports a key the file format does not define.
type UnknownFieldError struct {
	File  string
	Line  int
	Field string
}

func (e *UnknownFieldError) Error() string {
	msg := fmt.Sprintf("unknown field %q", e.Field)
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	}
	return msg
}

// UnknownActionError reports a rule bound to an action nobody registered.
type UnknownActionError struct {
	Verb    string
	Pattern string
	Action  string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("verb %q rule %q: unknown action %q", e.Verb, e.Pattern, e.Action)
}
