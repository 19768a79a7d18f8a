package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapverb/pkg/lint"
)

func writeConfig(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "leapverb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return dir, path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("project-dir", "", "")
	flags.String("grammar", "", "")
	flags.String("world", "", "")
	flags.String("world-driver", "", "")
	flags.String("world-seed", "", "")
	flags.String("scripts-dir", "", "")
	flags.StringSlice("articles", nil, "")
	flags.String("output", "", "")
	flags.Bool("verbose", false, "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir, path := writeConfig(t, "verbose: false\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, DefaultGrammarFile), cfg.Grammar)
	assert.Equal(t, filepath.Join(dir, DefaultWorldFile), cfg.World)
	assert.Equal(t, filepath.Join(dir, DefaultWorldSeed), cfg.WorldSeed)
	assert.Equal(t, filepath.Join(dir, DefaultScriptsDir), cfg.ScriptsDir)
	assert.Equal(t, filepath.Join(dir, DefaultHistoryFile), cfg.History)
	assert.Equal(t, "sqlite", cfg.WorldDriver)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultAddr, cfg.Serve.Addr)
	assert.Nil(t, cfg.Articles, "unset articles should leave the grammar's own list in charge")
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_FileValues(t *testing.T) {
	ResetConfig()
	dir, path := writeConfig(t, `grammar: game/grammar.yaml
world: ":memory:"
scripts_dir: /abs/scripts
articles: [the, some]
serve:
  addr: 127.0.0.1:9000
  watch: true
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "game", "grammar.yaml"), cfg.Grammar)
	assert.Equal(t, ":memory:", cfg.World, "in-memory DSN should not be resolved as a path")
	assert.Equal(t, "/abs/scripts", cfg.ScriptsDir)
	assert.Equal(t, []string{"the", "some"}, cfg.Articles)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
	assert.True(t, cfg.Serve.Watch)
}

func TestLoadConfig_EmptyArticlesDisables(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "articles: []\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Articles)
	assert.Empty(t, cfg.Articles)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "output: markdown\n")
	t.Setenv("LEAPVERB_OUTPUT", "text")

	flags := newFlags()
	require.NoError(t, flags.Set("output", "json"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat, "flag value should override config file and env var")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "output: markdown\n")
	t.Setenv("LEAPVERB_OUTPUT", "text")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.OutputFormat, "env var should override config file")
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "output: markdown\n")
	t.Setenv("LEAPVERB_OUTPUT", "text")

	cfg, err := LoadConfig(path, newFlags())
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.OutputFormat, "env var should be used when flag is not set")
}

func TestLoadConfig_ArticlesFromEnv(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "")
	t.Setenv("LEAPVERB_ARTICLES", "The, A")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "a"}, cfg.Articles)
}

func TestLoadConfig_ArticlesFromFlag(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "articles: [the]\n")

	flags := newFlags()
	require.NoError(t, flags.Set("articles", "a,an"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "an"}, cfg.Articles)
}

func TestLoadConfig_FlagPathsRelativeToCWD(t *testing.T) {
	ResetConfig()
	dir, path := writeConfig(t, "grammar: from_file.yaml\n")

	flags := newFlags()
	require.NoError(t, flags.Set("grammar", "other.yaml"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "other.yaml"), cfg.Grammar)
	assert.Equal(t, filepath.Join(dir, DefaultWorldSeed), cfg.WorldSeed)
}

func TestLoadConfig_ProjectDirFlag(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leapverb.yml"), []byte("grammar: g.yaml\n"), 0600))

	flags := newFlags()
	require.NoError(t, flags.Set("project-dir", dir))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, "g.yaml"), cfg.Grammar)
	assert.Equal(t, filepath.Join(dir, "leapverb.yml"), GetConfigFileUsed())
}

func TestLoadConfig_Lint(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "lint:\n  disabled: [gr01, WD03]\n  severity:\n    WD01: error\n")
	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	rules := cfg.Lint.Rules()
	assert.True(t, rules.IsDisabled("GR01"))
	assert.True(t, rules.IsDisabled("WD03"))
	assert.Equal(t, lint.SeverityError, rules.GetSeverity("WD01", lint.SeverityWarning))
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad driver", "world_driver: mysql\n", `invalid world_driver "mysql"`},
		{"bad output", "output: html\n", `invalid output "html"`},
		{"pgx without dsn", "world_driver: pgx\n", "needs a connection string"},
		{"malformed yaml", "grammar: [unclosed\n", "error reading config file"},
		{"bad lint severity", "lint:\n  severity:\n    GR01: loud\n", `unknown severity "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			_, path := writeConfig(t, tt.content)
			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFindProjectRootUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "leapverb.yaml"), nil, 0600))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))

	assert.Equal(t, root, findProjectRootUpward(nested))
	assert.Empty(t, findProjectRootUpward(t.TempDir()))
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "missing logger should fall back to a discard logger")
}
