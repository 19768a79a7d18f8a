package grammar

import "fmt"

// DefinitionError reports a structurally invalid grammar entry.
type DefinitionError struct {
	Verb    string
	Message string
}

func (e *DefinitionError) Error() string {
	if e.Verb == "" {
		return fmt.Sprintf("grammar error: %s", e.Message)
	}
	return fmt.Sprintf("grammar error in verb %q: %s", e.Verb, e.Message)
}

// ArityError reports a rule whose symbol count differs from the arity of
// its action.
type ArityError struct {
	Verb    string
	Pattern string
	Action  string
	Want    int // action arity
	Got     int // symbols in the rule
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("verb %q rule %q: action %s takes %d parameters, rule has %d symbols",
		e.Verb, e.Pattern, e.Action, e.Want, e.Got)
}

// UnregisteredSymbolError reports a rule symbol with no resolver.
type UnregisteredSymbolError struct {
	Verb    string
	Pattern string
	Symbol  string
}

func (e *UnregisteredSymbolError) Error() string {
	return fmt.Sprintf("verb %q rule %q: no resolver registered for symbol %q", e.Verb, e.Pattern, e.Symbol)
}

// Common error messages
const (
	ErrNoWords       = "verb has no words"
	ErrRuleOrphan    = "rule declared before any verb"
	ErrNilAction     = "rule %q has no action"
	ErrBlankVerbWord = "verb word is blank"
	ErrVerbWordSplit = "verb word %q is not a single input word"
)
