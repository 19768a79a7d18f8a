// Package pattern compiles rule-pattern strings into token sequences.
//
// A pattern is a whitespace-separated list of segments. A double-quoted
// segment holds one or more literal words; a bare segment names a symbol:
//
//	`single "on" single`  ->  [single "on" single]
//	`"pick up" single`    ->  ["pick" "up" single]
//	``                    ->  []
package pattern

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/leapverb/pkg/token"
)

// Lexer scans a rule pattern into tokens.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current char under examination
	width   int  // byte width of ch
}

// NewLexer creates a new Lexer for the given pattern.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.width = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.width = w
	l.readPos += w
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Column: l.pos + 1, Offset: l.pos}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// Next returns the tokens produced by the next segment. A quoted segment
// may produce zero or more literals; a bare segment always produces one
// symbol. It returns nil, nil at the end of the pattern.
func (l *Lexer) Next() ([]token.Token, error) {
	l.skipWhitespace()
	if l.atEOF() {
		return nil, nil
	}
	if l.ch == '"' {
		return l.readQuoted()
	}
	return []token.Token{token.Sym(l.readBare())}, nil
}

// readQuoted reads a "..." span and splits it into literal words.
func (l *Lexer) readQuoted() ([]token.Token, error) {
	start := l.currentPos()
	l.readChar() // opening quote
	from := l.pos
	for !l.atEOF() && l.ch != '"' {
		l.readChar()
	}
	if l.atEOF() {
		return nil, &CompileError{Pattern: l.input, Pos: start, Message: ErrUnterminatedQuote}
	}
	span := l.input[from:l.pos]
	l.readChar() // closing quote

	words := ExtractWords(span)
	toks := make([]token.Token, 0, len(words))
	for _, w := range words {
		toks = append(toks, token.Lit(w))
	}
	return toks, nil
}

// readBare reads a run of non-whitespace characters verbatim.
func (l *Lexer) readBare() string {
	from := l.pos
	for !l.atEOF() && !unicode.IsSpace(l.ch) {
		l.readChar()
	}
	return l.input[from:l.pos]
}

// ExtractWords returns the lowercased letter runs of s. Anything that is
// not a letter separates words.
func ExtractWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// Compile turns a rule pattern into its token sequence. An empty or
// all-whitespace pattern compiles to an empty sequence.
func Compile(pattern string) ([]token.Token, error) {
	l := NewLexer(pattern)
	toks := []token.Token{}
	for {
		seg, err := l.Next()
		if err != nil {
			return nil, err
		}
		if seg == nil {
			return toks, nil
		}
		toks = append(toks, seg...)
	}
}

// MustCompile is like Compile but panics on error. It is intended for
// static grammar tables and tests.
func MustCompile(pattern string) []token.Token {
	toks, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return toks
}
