// Package parser interprets short text-adventure commands against a
// grammar.
//
// # Usage
//
//	p := parser.New(g, parser.WithLogger(logger))
//	res := p.Parse(ctx, "put the small crate on the big crate")
//	if !res.Understood {
//	    fmt.Println(res.Output) // the grammar's not-understood reply
//	}
//
// # Matching
//
// The first input word selects the verb. Every verb listing that word as a
// synonym is tried in declaration order, and within a verb every rule in
// declaration order. A rule matches when its literals equal the input words,
// its symbols resolve, and rule and input are used up together. The first
// matching rule's action runs with the resolved values; when nothing
// matches the result carries the fixed not-understood reply.
package parser

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/token"
)

// Result is the outcome of one Parse call.
type Result struct {
	Understood bool
	Output     string // action output, or the not-understood reply

	Verb    string // matched verb name
	Pattern string // matched rule pattern
	Params  []any  // resolved symbol values

	// Err is the action's error. The command was understood but the action
	// itself failed.
	Err error

	// Attempts lists every rejected rule with its reason.
	Attempts []Attempt
}

// Attempt records a rule that was tried and rejected.
type Attempt struct {
	Verb    string
	Pattern string
	Err     error
}

// Parser matches commands against an immutable grammar. It holds no
// per-call state and is safe for concurrent use.
type Parser struct {
	grammar    *grammar.Grammar
	normalizer *Normalizer
	logger     *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for match diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a parser for g.
func New(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{
		grammar:    g,
		normalizer: NewNormalizer(g.Articles()),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grammar returns the grammar the parser matches against.
func (p *Parser) Grammar() *grammar.Grammar { return p.grammar }

// Normalize exposes the parser's input normalization.
func (p *Parser) Normalize(raw string) []string {
	return p.normalizer.Normalize(raw)
}

// Parse interprets raw and runs the action of the first matching rule.
func (p *Parser) Parse(ctx context.Context, raw string) Result {
	in := token.NewCursor(p.normalizer.Normalize(raw))

	key, ok := in.Advance()
	if !ok {
		return p.notUnderstood(nil)
	}

	reg := p.grammar.Registry()
	var attempts []Attempt

	for _, v := range p.grammar.Verbs() {
		if !v.Has(key) {
			continue
		}
		for _, r := range v.Rules {
			params, err := Match(ctx, r, in, reg)
			if err != nil {
				p.logger.Debug("rule rejected",
					slog.String("verb", v.Name()),
					slog.String("pattern", r.Pattern),
					slog.String("reason", err.Error()))
				attempts = append(attempts, Attempt{Verb: v.Name(), Pattern: r.Pattern, Err: err})
				continue
			}

			p.logger.Debug("rule matched",
				slog.String("verb", v.Name()),
				slog.String("pattern", r.Pattern),
				slog.String("action", r.Action.Name()),
				slog.Int("params", len(params)))

			out, err := r.Action.Invoke(ctx, params)
			if err != nil {
				p.logger.Warn("action failed", slog.String("action", r.Action.Name()), slog.Any("error", err))
			}
			return Result{
				Understood: true,
				Output:     out,
				Verb:       v.Name(),
				Pattern:    r.Pattern,
				Params:     params,
				Err:        err,
				Attempts:   attempts,
			}
		}
	}

	if len(attempts) == 0 {
		p.logger.Debug("unknown verb", slog.String("word", key))
	}
	return p.notUnderstood(attempts)
}

func (p *Parser) notUnderstood(attempts []Attempt) Result {
	return Result{
		Understood: false,
		Output:     p.grammar.NotUnderstood(),
		Attempts:   attempts,
	}
}
