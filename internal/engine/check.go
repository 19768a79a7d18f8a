package engine

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapverb/internal/actions"
	"github.com/leapstack-labs/leapverb/internal/loader"
	"github.com/leapstack-labs/leapverb/internal/script"
	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/lint"
	_ "github.com/leapstack-labs/leapverb/pkg/lint/rules" // registers the built-in rules
	"github.com/leapstack-labs/leapverb/pkg/resolve"
	"github.com/leapstack-labs/leapverb/pkg/world"
)

// Report is the result of Check.
type Report struct {
	Grammar  *grammar.Grammar // nil when the grammar failed to build
	Actions  []string
	Scripts  int
	World    *loader.WorldFile // nil when no seed is configured or it failed
	Problems []error
	// Diagnostics are lint findings about definitions that loaded cleanly.
	Diagnostics []lint.Diagnostic
}

// OK reports whether Check found nothing wrong. Lint findings below error
// severity do not count.
func (r *Report) OK() bool { return len(r.Problems) == 0 && !lint.HasErrors(r.Diagnostics) }

// Check loads the grammar, scripts and world seed without touching the
// world database and reports every problem found. The returned error is
// only for failures to run the check itself.
func Check(ctx context.Context, cfg Config) (*Report, error) {
	var (
		gf       *loader.GrammarFile
		gfErr    error
		modules  []*script.Module
		scErr    error
		wf       *loader.WorldFile
		wfErr    error
		articles = cfg.Articles
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		if cfg.GrammarPath == "" {
			gfErr = errors.New("no grammar file configured")
			return nil
		}
		gf, gfErr = loader.LoadGrammarFile(cfg.GrammarPath)
		return nil
	})
	g.Go(func() error {
		modules, scErr = script.NewLoader(cfg.ScriptsDir).Load()
		return nil
	})
	g.Go(func() error {
		if cfg.WorldSeed != "" {
			wf, wfErr = loader.LoadWorldFile(cfg.WorldSeed)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{World: wf}
	for _, err := range []error{gfErr, scErr, wfErr} {
		if err != nil {
			report.Problems = append(report.Problems, unjoin(err)...)
		}
	}

	// Resolvers and builtins only touch the world when invoked.
	empty := world.NewStatic("", nil, nil)
	catalog := actions.NewCatalog()
	if err := actions.RegisterBuiltins(catalog, empty); err != nil {
		return nil, err
	}
	for _, a := range script.Actions(modules, nil) {
		if err := catalog.Register(a, "script"); err != nil {
			report.Problems = append(report.Problems, err)
		}
		report.Scripts++
	}
	report.Actions = catalog.Names()

	if gf != nil {
		if articles != nil {
			gf.Articles = &articles
		}
		gr, err := gf.Build(resolve.Builtins(empty), catalog)
		if err != nil {
			report.Problems = append(report.Problems, unjoin(err)...)
		} else {
			if err := gr.Validate(); err != nil {
				report.Problems = append(report.Problems, unjoin(err)...)
			}
			report.Grammar = gr
		}
	}

	project := &lint.Project{Grammar: report.Grammar}
	if wf != nil {
		project.Start = wf.Start
		project.Rooms = wf.WorldRooms()
		project.Objects = wf.WorldObjects()
	}
	report.Diagnostics = lint.NewAnalyzer(cfg.Lint).Analyze(project)
	return report, nil
}

// unjoin flattens an errors.Join tree into its leaves.
func unjoin(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, unjoin(e)...)
	}
	return out
}
