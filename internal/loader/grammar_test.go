package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
)

type actionMap map[string]grammar.Action

func (m actionMap) Lookup(name string) (grammar.Action, bool) {
	a, ok := m[name]
	return a, ok
}

func testActions() actionMap {
	noop := func(context.Context, []any) (string, error) { return "", nil }
	return actionMap{
		"take":  grammar.NewAction("take", 1, noop),
		"put":   grammar.NewAction("put", 2, noop),
		"dance": grammar.Reply("dance", "You dance."),
	}
}

const sampleGrammar = `
not_understood: "Eh?"
verbs:
  - words: [take, get]
    rules:
      - pattern: single
        action: take
      - pattern: '"up" single'
        action: take
  - words: [put]
    rules:
      - pattern: 'single "on" single'
        action: put
  - words: [dance]
    rules:
      - pattern: ''
        action: dance
`

func TestParseGrammar(t *testing.T) {
	f, err := ParseGrammar("game.yaml", []byte(sampleGrammar))
	require.NoError(t, err)
	assert.Nil(t, f.Articles)
	require.Len(t, f.Verbs, 3)
	assert.Equal(t, []string{"take", "get"}, f.Verbs[0].Words)
	assert.Equal(t, `"up" single`, f.Verbs[0].Rules[1].Pattern)

	g, err := f.Build(nil, testActions())
	require.NoError(t, err)
	assert.Equal(t, "Eh?", g.NotUnderstood())
	assert.Equal(t, grammar.DefaultArticles, g.Articles())
	assert.Equal(t, []string{"take", "get", "put", "dance"}, g.VerbWords())
}

func TestParseGrammar_Articles(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{"override", "articles: [The, some]\nverbs: []\n", []string{"the", "some"}},
		{"explicitly empty", "articles: []\nverbs: []\n", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseGrammar("g.yaml", []byte(tt.yaml))
			require.NoError(t, err)
			g, err := f.Build(nil, testActions())
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.Articles())
		})
	}
}

func TestParseGrammar_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "invalid yaml",
			yaml:    "verbs: [",
			wantErr: "invalid YAML",
		},
		{
			name:    "top level not a mapping",
			yaml:    "- take\n",
			wantErr: "expected a mapping",
		},
		{
			name:    "empty file",
			yaml:    "",
			wantErr: "file is empty",
		},
		{
			name:    "unknown top-level field",
			yaml:    "verbz: []\n",
			wantErr: `g.yaml:1: unknown field "verbz"`,
		},
		{
			name: "unknown nested field",
			yaml: "verbs:\n  - words: [take]\n    rules:\n      - pattern: single\n        handler: take\n",
			check: func(t *testing.T, err error) {
				var uf *UnknownFieldError
				require.True(t, errors.As(err, &uf))
				assert.Equal(t, "handler", uf.Field)
				assert.Equal(t, 5, uf.Line)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrammar("g.yaml", []byte(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestGrammarFile_BuildErrors(t *testing.T) {
	f, err := ParseGrammar("g.yaml", []byte(`
verbs:
  - words: [take]
    rules:
      - pattern: single
        action: steal
      - pattern: 'single single'
        action: take
  - words: [sing]
    rules:
      - pattern: '"la'
        action: dance
`))
	require.NoError(t, err)

	_, err = f.Build(nil, testActions())
	require.Error(t, err)

	var ua *UnknownActionError
	require.True(t, errors.As(err, &ua))
	assert.Equal(t, "steal", ua.Action)

	var ae *grammar.ArityError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 2, ae.Got)

	assert.Contains(t, err.Error(), "unterminated")
}

func TestLoadGrammarFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleGrammar), 0o644))

	f, err := LoadGrammarFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	assert.Len(t, f.Verbs, 3)

	_, err = LoadGrammarFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
