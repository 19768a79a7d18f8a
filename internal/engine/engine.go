// Package engine wires a grammar file, the world store and the action
// catalog into a ready-to-use parser, and records every executed command.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/leapverb/internal/actions"
	"github.com/leapstack-labs/leapverb/internal/loader"
	"github.com/leapstack-labs/leapverb/internal/script"
	"github.com/leapstack-labs/leapverb/internal/state"
	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/lint"
	"github.com/leapstack-labs/leapverb/pkg/parser"
	"github.com/leapstack-labs/leapverb/pkg/resolve"
)

// Engine owns the world store and the current parser. The parser is
// replaced atomically by Reload.
type Engine struct {
	logger  *slog.Logger
	cfg     Config
	store   *state.Store
	pool    *script.ThreadPool
	session string

	mu      sync.RWMutex
	parser  *parser.Parser
	catalog *actions.Catalog

	// turn serializes Exec: actions read scope and then move objects.
	turn sync.Mutex
}

// Config holds engine configuration.
type Config struct {
	// GrammarPath is the grammar YAML file
	GrammarPath string
	// WorldDriver is the database/sql driver for the world store
	WorldDriver string
	// WorldDSN is the world database location
	WorldDSN string
	// WorldSeed is an optional world YAML loaded into an empty world
	WorldSeed string
	// ScriptsDir holds Starlark action scripts (optional)
	ScriptsDir string
	// Articles overrides the grammar's article list when non-nil
	Articles []string
	// Lint selects and grades the rules Check runs (optional, all rules at
	// default severity if nil)
	Lint *lint.Config
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New opens the world store, seeds it when empty and a seed file is
// configured, then loads the grammar.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initializing engine",
		slog.String("grammar", cfg.GrammarPath),
		slog.String("world_driver", cfg.WorldDriver),
		slog.String("scripts_dir", cfg.ScriptsDir))

	store, err := OpenStore(cfg.WorldDriver, cfg.WorldDSN, logger)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		logger:  logger,
		cfg:     cfg,
		store:   store,
		pool:    script.NewThreadPool(0, script.WithStepLimit(script.DefaultStepLimit), script.WithPrintLogger(logger)),
		session: state.NewSessionID(),
	}

	if cfg.WorldSeed != "" {
		seeded, err := store.Seeded(ctx)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		if !seeded {
			if _, err := e.Seed(ctx, cfg.WorldSeed); err != nil {
				_ = store.Close()
				return nil, err
			}
		}
	}

	if err := e.Reload(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return e, nil
}

// OpenStore opens the world store and brings its schema up to date.
func OpenStore(driver, dsn string, logger *slog.Logger) (*state.Store, error) {
	store := state.NewStore(logger)
	if err := store.Open(driver, dsn); err != nil {
		return nil, fmt.Errorf("failed to open world store: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize world schema: %w", err)
	}
	return store, nil
}

// Close releases the world store.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store returns the world store.
func (e *Engine) Store() *state.Store { return e.store }

// SessionID identifies this engine's transcript.
func (e *Engine) SessionID() string { return e.session }

// Parser returns the current parser.
func (e *Engine) Parser() *parser.Parser {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parser
}

// Catalog returns the action catalog the current grammar was built with.
func (e *Engine) Catalog() *actions.Catalog {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.catalog
}

// Grammar returns the current grammar.
func (e *Engine) Grammar() *grammar.Grammar {
	return e.Parser().Grammar()
}

// Reload rebuilds the action catalog and grammar from disk. On failure the
// previous grammar stays in effect.
func (e *Engine) Reload() error {
	catalog, g, err := build(e.cfg, e.store, e.pool)
	if err != nil {
		return err
	}
	p := parser.New(g, parser.WithLogger(e.logger))

	e.mu.Lock()
	e.parser = p
	e.catalog = catalog
	e.mu.Unlock()

	e.logger.Info("grammar loaded",
		slog.String("path", e.cfg.GrammarPath),
		slog.Int("verbs", len(g.Verbs())),
		slog.Int("actions", catalog.Count()))
	return nil
}

// Exec parses command, runs the matched action and records the turn in
// the session transcript. A transcript failure is logged, not returned.
// Concurrent calls run one at a time.
func (e *Engine) Exec(ctx context.Context, command string) parser.Result {
	e.turn.Lock()
	defer e.turn.Unlock()

	res := e.Parser().Parse(ctx, command)

	output := res.Output
	if res.Err != nil {
		output = res.Err.Error()
	}
	turn := &state.Turn{
		SessionID:  e.session,
		Command:    command,
		Output:     output,
		Understood: res.Understood,
	}
	if err := e.store.RecordTurn(ctx, turn); err != nil {
		e.logger.Warn("failed to record turn", slog.Any("error", err))
	}
	return res
}

// Seed loads a world file into the store, replacing its content.
func (e *Engine) Seed(ctx context.Context, path string) (*loader.WorldFile, error) {
	return SeedStore(ctx, e.store, path)
}

// SeedStore loads a world file into store without building a grammar.
func SeedStore(ctx context.Context, store *state.Store, path string) (*loader.WorldFile, error) {
	wf, err := loader.LoadWorldFile(path)
	if err != nil {
		return nil, err
	}
	err = store.Seed(ctx, state.Seed{
		Start:   wf.Start,
		Rooms:   wf.WorldRooms(),
		Objects: wf.WorldObjects(),
	})
	if err != nil {
		return nil, err
	}
	return wf, nil
}

// build assembles a catalog and grammar against w.
func build(cfg Config, store *state.Store, pool *script.ThreadPool) (*actions.Catalog, *grammar.Grammar, error) {
	if cfg.GrammarPath == "" {
		return nil, nil, errors.New("no grammar file configured")
	}

	catalog := actions.NewCatalog()
	if err := actions.RegisterBuiltins(catalog, store); err != nil {
		return nil, nil, err
	}
	if _, err := script.Register(catalog, cfg.ScriptsDir, pool); err != nil {
		return nil, nil, fmt.Errorf("failed to load scripts: %w", err)
	}

	gf, err := loader.LoadGrammarFile(cfg.GrammarPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Articles != nil {
		articles := cfg.Articles
		gf.Articles = &articles
	}

	g, err := gf.Build(resolve.Builtins(store), catalog)
	if err != nil {
		return nil, nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}
	return catalog, g, nil
}
