package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorAdvance(t *testing.T) {
	c := NewCursor([]string{"old", "rusty", "key"})

	assert.Equal(t, -1, c.Pos(), "cursor starts before the first element")
	_, ok := c.Current()
	assert.False(t, ok, "nothing is current before the first advance")

	for _, want := range []string{"old", "rusty", "key"} {
		got, ok := c.Advance()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok = c.Advance()
	assert.False(t, ok, "advance past the end reports exhaustion")
	assert.Equal(t, 3, c.Pos())

	_, ok = c.Advance()
	assert.False(t, ok)
	assert.Equal(t, 3, c.Pos(), "position does not run away past the end")
}

func TestCursorPeekIsIdempotent(t *testing.T) {
	c := NewCursor([]string{"take", "lamp"})

	for i := 0; i < 3; i++ {
		got, ok := c.Peek()
		require.True(t, ok)
		assert.Equal(t, "take", got)
		assert.Equal(t, -1, c.Pos())
	}

	c.Advance()
	got, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, "lamp", got)

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "take", cur)
}

func TestCursorDone(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		advances int
		want     bool
	}{
		{name: "empty sequence", items: nil, advances: 0, want: true},
		{name: "fresh cursor", items: []string{"a"}, advances: 0, want: false},
		{name: "on last element", items: []string{"a", "b"}, advances: 2, want: true},
		{name: "middle", items: []string{"a", "b", "c"}, advances: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.items)
			for i := 0; i < tt.advances; i++ {
				c.Advance()
			}
			assert.Equal(t, tt.want, c.Done())
		})
	}
}

func TestCursorCopiesAreIndependent(t *testing.T) {
	start := NewCursor([]string{"small", "crate", "on", "big", "crate"})
	start.Advance()

	a := start
	a.Advance()
	a.Advance()

	b := start
	got, ok := b.Advance()
	require.True(t, ok)
	assert.Equal(t, "crate", got, "copy taken before a moved must not see a's moves")
	assert.Equal(t, 0, start.Pos(), "original stays where it was")
	assert.Equal(t, []string{"crate", "on"}, a.Consumed(start))
}

func TestCursorRemaining(t *testing.T) {
	c := NewCursor([]string{"go", "north"})
	assert.Equal(t, []string{"go", "north"}, c.Remaining())

	c.Advance()
	assert.Equal(t, []string{"north"}, c.Remaining())

	c.Advance()
	assert.Nil(t, c.Remaining())
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, `"on"`, Lit("on").String())
	assert.Equal(t, "single", Sym("single").String())
	assert.Equal(t, "LITERAL", Literal.String())
	assert.Equal(t, "SYMBOL", Symbol.String())
	assert.Equal(t, []string{"single", "single"},
		Symbols([]Token{Sym("single"), Lit("on"), Sym("single")}))
}
