package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapverb/pkg/lint"
)

func TestCheck_OK(t *testing.T) {
	report, err := Check(context.Background(), testConfig(t))
	require.NoError(t, err)
	assert.True(t, report.OK(), "%v", report.Problems)
	require.NotNil(t, report.Grammar)
	assert.Equal(t, 1, report.Scripts)
	assert.Contains(t, report.Actions, "books.read")
	require.NotNil(t, report.World)
	assert.Equal(t, "cellar", report.World.Start)
}

func TestCheck_Problems(t *testing.T) {
	dir := t.TempDir()
	grammarPath := filepath.Join(dir, "grammar.yaml")
	require.NoError(t, os.WriteFile(grammarPath, []byte(`
verbs:
  - words: [take]
    rules:
      - pattern: 'thing'
        action: take
      - pattern: 'single single'
        action: take
      - pattern: ''
        action: steal
`), 0o644))
	worldPath := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(worldPath, []byte("start: nowhere\n"), 0o644))

	cfg := testConfig(t)
	cfg.GrammarPath = grammarPath
	cfg.WorldSeed = worldPath

	report, err := Check(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Nil(t, report.Grammar)

	var msgs []string
	for _, p := range report.Problems {
		msgs = append(msgs, p.Error())
	}
	assert.Len(t, msgs, 3)
	assert.Contains(t, msgs[0], `start room "nowhere" is not defined`)
}

func TestCheck_UnregisteredSymbol(t *testing.T) {
	dir := t.TempDir()
	grammarPath := filepath.Join(dir, "grammar.yaml")
	require.NoError(t, os.WriteFile(grammarPath, []byte(`
verbs:
  - words: [x]
    rules:
      - pattern: 'thing'
        action: examine
`), 0o644))

	cfg := testConfig(t)
	cfg.GrammarPath = grammarPath

	report, err := Check(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Problems, 1)
	assert.Contains(t, report.Problems[0].Error(), `no resolver registered for symbol "thing"`)
	assert.NotNil(t, report.Grammar)
}

func TestCheck_Lint(t *testing.T) {
	dir := t.TempDir()
	grammarPath := filepath.Join(dir, "grammar.yaml")
	require.NoError(t, os.WriteFile(grammarPath, []byte(`
verbs:
  - words: [look]
    rules:
      - pattern: ''
        action: look
      - pattern: ''
        action: look
  - words: [take]
    rules:
      - pattern: '"the" single'
        action: take
`), 0o644))
	worldPath := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(worldPath, []byte(`
start: cellar
rooms:
  - id: cellar
    exits: {up: attic}
  - id: attic
    exits: {down: cellar}
  - id: vault
    exits: {up: cellar}
`), 0o644))

	cfg := testConfig(t)
	cfg.GrammarPath = grammarPath
	cfg.WorldSeed = worldPath

	report, err := Check(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, report.Problems)
	assert.False(t, report.OK(), "an error-level finding fails the check")

	ids := make(map[string]bool)
	for _, d := range report.Diagnostics {
		ids[d.RuleID+":"+d.Subject] = true
	}
	assert.True(t, ids["GR02:look"], "%v", report.Diagnostics)
	assert.True(t, ids["GR03:take"], "%v", report.Diagnostics)
	assert.True(t, ids["WD01:vault"], "%v", report.Diagnostics)

	cfg.Lint = lint.NewConfig().SetSeverity("GR03", lint.SeverityWarning)
	report, err = Check(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, report.OK())
}
