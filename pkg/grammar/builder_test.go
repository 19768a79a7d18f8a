package grammar_test

import (
	"context"
	"testing"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/pattern"
	"github.com/leapstack-labs/leapverb/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(name string, arity int) grammar.Action {
	return grammar.NewAction(name, arity, func(context.Context, []any) (string, error) {
		return name, nil
	})
}

func wordResolver() grammar.Resolver {
	return grammar.ResolverFunc(func(_ context.Context, in token.Cursor[string]) (grammar.Outcome, error) {
		w, _ := in.Advance()
		return grammar.Outcome{Value: w, Next: in}, nil
	})
}

func TestBuilderBuild(t *testing.T) {
	reg := grammar.NewRegistry()
	reg.Register("single", wordResolver())

	g, err := grammar.NewBuilder(reg).
		Verb("Take", "get").
		Rule("single", noop("take", 1)).
		Rule(`"up" single`, noop("take", 1)).
		Verb("dance").
		Rule("", noop("dance", 0)).
		Build()
	require.NoError(t, err)

	verbs := g.Verbs()
	require.Len(t, verbs, 2)
	assert.Equal(t, []string{"take", "get"}, verbs[0].Words, "synonyms are lowercased")
	assert.Equal(t, "take", verbs[0].Name())
	assert.True(t, verbs[0].Has("get"))
	require.Len(t, verbs[0].Rules, 2)
	assert.Equal(t, []token.Token{token.Lit("up"), token.Sym("single")}, verbs[0].Rules[1].Tokens)
	assert.Empty(t, verbs[1].Rules[0].Tokens)

	assert.Equal(t, grammar.DefaultNotUnderstood, g.NotUnderstood())
	assert.Equal(t, []string{"a", "an", "the"}, g.Articles())
	assert.Equal(t, []string{"take", "get", "dance"}, g.VerbWords())
	assert.NoError(t, g.Validate())
}

func TestBuilderIsolatesBuiltGrammar(t *testing.T) {
	b := grammar.NewBuilder(nil).Verb("wait").Rule("", noop("wait", 0))
	g, err := b.Build()
	require.NoError(t, err)

	b.Verb("sleep").Rule("", noop("sleep", 0))
	assert.Len(t, g.Verbs(), 1, "later builder calls must not leak into a built grammar")
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(*grammar.Builder) *grammar.Builder
		check func(t *testing.T, err error)
	}{
		{
			name: "arity mismatch",
			build: func(b *grammar.Builder) *grammar.Builder {
				return b.Verb("put").Rule(`single "on" single`, noop("put", 1))
			},
			check: func(t *testing.T, err error) {
				var aerr *grammar.ArityError
				require.ErrorAs(t, err, &aerr)
				assert.Equal(t, 1, aerr.Want)
				assert.Equal(t, 2, aerr.Got)
				assert.Equal(t, "put", aerr.Verb)
			},
		},
		{
			name: "bad pattern",
			build: func(b *grammar.Builder) *grammar.Builder {
				return b.Verb("say").Rule(`"hello`, noop("say", 0))
			},
			check: func(t *testing.T, err error) {
				var cerr *pattern.CompileError
				require.ErrorAs(t, err, &cerr)
				assert.Contains(t, err.Error(), `verb "say"`)
			},
		},
		{
			name: "rule before verb",
			build: func(b *grammar.Builder) *grammar.Builder {
				return b.Rule("", noop("x", 0))
			},
			check: func(t *testing.T, err error) {
				var derr *grammar.DefinitionError
				require.ErrorAs(t, err, &derr)
				assert.Equal(t, grammar.ErrRuleOrphan, derr.Message)
			},
		},
		{
			name: "verb without words",
			build: func(b *grammar.Builder) *grammar.Builder {
				return b.Verb("  ").Rule("", noop("x", 0))
			},
			check: func(t *testing.T, err error) {
				var derr *grammar.DefinitionError
				require.ErrorAs(t, err, &derr)
			},
		},
		{
			name: "multi-word synonym",
			build: func(b *grammar.Builder) *grammar.Builder {
				return b.Verb("pick up", "take").Rule("", noop("take", 0))
			},
			check: func(t *testing.T, err error) {
				var derr *grammar.DefinitionError
				require.ErrorAs(t, err, &derr)
				assert.Contains(t, derr.Message, `"pick up" is not a single input word`)
			},
		},
		{
			name: "punctuated synonym",
			build: func(b *grammar.Builder) *grammar.Builder {
				return b.Verb("look!").Rule("", noop("look", 0))
			},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), `"look!"`)
			},
		},
		{
			name: "nil action",
			build: func(b *grammar.Builder) *grammar.Builder {
				return b.Verb("jump").Rule("", nil)
			},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "has no action")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build(grammar.NewBuilder(nil)).Build()
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestVariadicActionSkipsArityCheck(t *testing.T) {
	_, err := grammar.NewBuilder(nil).
		Verb("xyzzy").
		Rule("", grammar.Reply("xyzzy", "Nothing happens.")).
		Rule("single single", grammar.Reply("xyzzy", "Nothing happens.")).
		Build()
	assert.NoError(t, err)
}

func TestValidateReportsUnregisteredSymbols(t *testing.T) {
	reg := grammar.NewRegistry()
	reg.Register("single", wordResolver())

	g, err := grammar.NewBuilder(reg).
		Verb("go").
		Rule("direction", noop("go", 1)).
		Verb("put").
		Rule(`single "on" surface`, noop("put", 2)).
		Build()
	require.NoError(t, err, "unregistered symbols are not a build error")

	err = g.Validate()
	require.Error(t, err)

	var uerr *grammar.UnregisteredSymbolError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "direction", uerr.Symbol)
	assert.Contains(t, err.Error(), `"surface"`)
}

func TestRegistry(t *testing.T) {
	reg := grammar.NewRegistry()
	reg.Register("word", wordResolver())
	reg.Register("single", wordResolver())

	_, ok := reg.Lookup("word")
	assert.True(t, ok)
	_, ok = reg.Lookup("held")
	assert.False(t, ok)
	assert.Equal(t, []string{"single", "word"}, reg.Names())

	var nilReg *grammar.Registry
	_, ok = nilReg.Lookup("word")
	assert.False(t, ok)
}
