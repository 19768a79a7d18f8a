package token

// Position locates a character in a rule pattern.
type Position struct {
	Column int // 1-based
	Offset int // 0-based byte offset
}

// IsValid reports whether the position was set.
func (p Position) IsValid() bool {
	return p.Column > 0
}
