package script

import (
	"context"
	"fmt"
	"sort"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/leapverb/internal/actions"
	"github.com/leapstack-labs/leapverb/pkg/grammar"
)

// Action runs a Starlark function as a grammar action.
type Action struct {
	name string
	fn   *starlark.Function
	pool *ThreadPool
}

// NewAction wraps fn under name.
func NewAction(name string, fn *starlark.Function, pool *ThreadPool) *Action {
	if pool == nil {
		pool = NewThreadPool(0)
	}
	return &Action{name: name, fn: fn, pool: pool}
}

// Name returns the action name.
func (a *Action) Name() string { return a.name }

// Arity is the function's parameter count, or grammar.Variadic when it
// takes *args.
func (a *Action) Arity() int {
	if a.fn.HasVarargs() {
		return grammar.Variadic
	}
	return a.fn.NumParams()
}

// Invoke calls the function with params converted to Starlark values.
// Cancelling ctx aborts a running script.
func (a *Action) Invoke(ctx context.Context, params []any) (string, error) {
	args := make(starlark.Tuple, len(params))
	for i, p := range params {
		v, err := GoToStarlark(p)
		if err != nil {
			return "", fmt.Errorf("%s: parameter %d: %w", a.name, i+1, err)
		}
		args[i] = v
	}

	thread := a.pool.Get(a.name)
	done := make(chan struct{})
	stopped := make(chan struct{})
	cancelled := false
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			cancelled = true
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	result, err := starlark.Call(thread, a.fn, args, nil)
	close(done)
	<-stopped
	a.pool.Put(thread, cancelled || err != nil)

	if err != nil {
		return "", fmt.Errorf("%s: %w", a.name, err)
	}
	return ToOutput(result), nil
}

// Actions returns one action per exported function across modules, named
// <namespace>.<function>.
func Actions(modules []*Module, pool *ThreadPool) []grammar.Action {
	var out []grammar.Action
	for _, m := range modules {
		for _, name := range m.FunctionNames() {
			out = append(out, NewAction(m.Namespace+"."+name, m.Functions[name], pool))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Register loads every script in dir and adds its actions to c. It returns
// the number of actions registered.
func Register(c *actions.Catalog, dir string, pool *ThreadPool) (int, error) {
	modules, err := NewLoader(dir).Load()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range modules {
		for _, name := range m.FunctionNames() {
			if err := c.Register(NewAction(m.Namespace+"."+name, m.Functions[name], pool), m.Path); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}
