// Package token defines the tokens produced by compiling rule patterns
// and the cursor used to walk both rule tokens and input words.
package token

import "fmt"

// Kind distinguishes literal words from symbol references.
type Kind uint8

const (
	// Literal tokens must equal the input word exactly.
	Literal Kind = iota
	// Symbol tokens are handed to a resolver registered under their name.
	Symbol
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Literal:
		return "LITERAL"
	case Symbol:
		return "SYMBOL"
	default:
		return fmt.Sprintf("KIND(%d)", k)
	}
}

// Token is a single compiled rule element.
type Token struct {
	Kind  Kind
	Value string // the word for literals, the symbol name for symbols
}

// Lit returns a literal token for word.
func Lit(word string) Token {
	return Token{Kind: Literal, Value: word}
}

// Sym returns a symbol token for name.
func Sym(name string) Token {
	return Token{Kind: Symbol, Value: name}
}

// IsLiteral reports whether t is a literal.
func (t Token) IsLiteral() bool { return t.Kind == Literal }

// IsSymbol reports whether t is a symbol reference.
func (t Token) IsSymbol() bool { return t.Kind == Symbol }

// String renders the token the way it would appear in a rule pattern:
// literals quoted, symbols bare.
func (t Token) String() string {
	if t.Kind == Literal {
		return fmt.Sprintf("%q", t.Value)
	}
	return t.Value
}

// Symbols returns the symbol names in toks, in order.
func Symbols(toks []Token) []string {
	var names []string
	for _, t := range toks {
		if t.Kind == Symbol {
			names = append(names, t.Value)
		}
	}
	return names
}
