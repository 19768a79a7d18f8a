package parser

import (
	"context"
	"errors"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/token"
)

// Match tries one rule against the input following the verb word.
//
// start is taken by value, so each attempt works on its own copy and a
// failed attempt cannot disturb the next. On success the resolved values
// are returned in the order their symbols appear in the rule. The rule
// matches only if rule tokens and input words run out together.
func Match(ctx context.Context, rule grammar.Rule, start token.Cursor[string], reg *grammar.Registry) ([]any, error) {
	in := start
	rc := token.NewCursor(rule.Tokens)
	params := make([]any, 0, len(rule.Tokens))

	for {
		tok, ok := rc.Advance()
		if !ok {
			break
		}

		switch tok.Kind {
		case token.Literal:
			word, ok := in.Peek()
			if !ok {
				return nil, &MatchError{Reason: ReasonInputExhausted, Token: tok, Pos: in.Pos() + 1}
			}
			if word != tok.Value {
				return nil, &MatchError{Reason: ReasonLiteralMismatch, Token: tok, Word: word, Pos: in.Pos() + 1}
			}
			in.Advance()

		case token.Symbol:
			res, ok := reg.Lookup(tok.Value)
			if !ok {
				return nil, &MatchError{Reason: ReasonUnregisteredSymbol, Token: tok, Pos: in.Pos() + 1}
			}
			out, err := res.Resolve(ctx, in)
			if err != nil {
				word, _ := in.Peek()
				return nil, &MatchError{Reason: ReasonResolverFailed, Token: tok, Word: word, Pos: in.Pos() + 1, Err: err}
			}
			if out.Next.Pos() < in.Pos() {
				return nil, &MatchError{Reason: ReasonResolverFailed, Token: tok, Pos: in.Pos() + 1, Err: errors.New(ErrCursorRewound)}
			}
			params = append(params, out.Value)
			in = out.Next
		}
	}

	if word, ok := in.Peek(); ok {
		return nil, &MatchError{Reason: ReasonTrailingInput, Word: word, Pos: in.Pos() + 1}
	}
	return params, nil
}
