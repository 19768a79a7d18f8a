package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapverb/internal/cli/config"
	"github.com/leapstack-labs/leapverb/internal/cli/output"
	"github.com/leapstack-labs/leapverb/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// The returned cleanup function must be called, typically via defer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(cmd.Context(), cc.Cfg, cc.Logger)
	if err != nil {
		return nil, nil, err
	}
	cc.Engine = eng

	return cc, func() { _ = eng.Close() }, nil
}

// NewCommandContextWithoutEngine creates a CommandContext for commands that
// don't open the world store.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// getConfig returns the loaded configuration, or defaults when commands
// run without the root command (as in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Grammar:      config.DefaultGrammarFile,
		World:        ":memory:",
		WorldDriver:  "sqlite",
		WorldSeed:    config.DefaultWorldSeed,
		ScriptsDir:   config.DefaultScriptsDir,
		OutputFormat: config.DefaultOutput,
		History:      config.DefaultHistoryFile,
		Serve:        config.ServeConfig{Addr: config.DefaultAddr},
	}
}

// engineConfig maps CLI configuration to engine configuration. A world
// seed that does not exist is ignored so a game can run without one.
func engineConfig(cfg *config.Config, logger *slog.Logger) engine.Config {
	seed := cfg.WorldSeed
	if seed != "" {
		if _, err := os.Stat(seed); err != nil {
			seed = ""
		}
	}
	return engine.Config{
		GrammarPath: cfg.Grammar,
		WorldDriver: cfg.WorldDriver,
		WorldDSN:    cfg.World,
		WorldSeed:   seed,
		ScriptsDir:  cfg.ScriptsDir,
		Articles:    cfg.Articles,
		Lint:        cfg.Lint.Rules(),
		Logger:      logger,
	}
}

func createEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	if err := ensureParentDir(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return engine.New(ctx, engineConfig(cfg, logger))
}

func ensureParentDir(cfg *config.Config) error {
	if !cfg.IsFileWorld() {
		return nil
	}
	dir := filepath.Dir(cfg.World)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0750)
}
