package grammar

import "context"

// Variadic is the arity of actions that accept any number of parameters.
const Variadic = -1

// Action is the callback bound to a rule. It receives one resolved value per
// symbol in the rule, in the order the symbols appear.
type Action interface {
	Name() string
	Arity() int
	Invoke(ctx context.Context, args []any) (string, error)
}

// ActionFunc is the function shape wrapped by NewAction.
type ActionFunc func(ctx context.Context, args []any) (string, error)

type funcAction struct {
	name  string
	arity int
	fn    ActionFunc
}

// NewAction wraps fn as an Action with a fixed arity (or Variadic).
func NewAction(name string, arity int, fn ActionFunc) Action {
	return &funcAction{name: name, arity: arity, fn: fn}
}

func (a *funcAction) Name() string { return a.name }
func (a *funcAction) Arity() int   { return a.arity }

func (a *funcAction) Invoke(ctx context.Context, args []any) (string, error) {
	return a.fn(ctx, args)
}

// Reply returns an action that ignores its parameters and answers text.
func Reply(name, text string) Action {
	return NewAction(name, Variadic, func(context.Context, []any) (string, error) {
		return text, nil
	})
}
