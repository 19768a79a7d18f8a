package token

// Cursor is a forward-only position over a sequence. The position starts
// before the first element, so the first Advance yields element 0.
//
// Cursor is a value type: copying it produces an independent cursor over the
// same backing slice. The slice is never written through a cursor.
type Cursor[T any] struct {
	items []T
	pos   int
}

// NewCursor returns a cursor positioned before the first element of items.
func NewCursor[T any](items []T) Cursor[T] {
	return Cursor[T]{items: items, pos: -1}
}

// Advance moves forward one position and returns the element now under the
// cursor. It returns false once the sequence is exhausted; the position then
// stays one past the last element.
func (c *Cursor[T]) Advance() (T, bool) {
	if c.pos < len(c.items) {
		c.pos++
	}
	return c.Current()
}

// Current returns the element at the current position without moving.
func (c Cursor[T]) Current() (T, bool) {
	if c.pos < 0 || c.pos >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[c.pos], true
}

// Peek returns what Advance would return without moving.
func (c Cursor[T]) Peek() (T, bool) {
	// c is a copy, so advancing it leaves the caller's position alone.
	return c.Advance()
}

// Done reports whether there is nothing left to advance to.
func (c Cursor[T]) Done() bool {
	return c.pos+1 >= len(c.items)
}

// Pos returns the current index; -1 means before the first element.
func (c Cursor[T]) Pos() int { return c.pos }

// Len returns the length of the underlying sequence.
func (c Cursor[T]) Len() int { return len(c.items) }

// Remaining returns the elements after the current position.
func (c Cursor[T]) Remaining() []T {
	if c.pos+1 >= len(c.items) {
		return nil
	}
	return c.items[c.pos+1:]
}

// Consumed returns the elements from start (exclusive) up to and including
// the current position. It is used to report which input a resolver ate.
func (c Cursor[T]) Consumed(start Cursor[T]) []T {
	from := start.pos + 1
	to := c.pos + 1
	if to > len(c.items) {
		to = len(c.items)
	}
	if from < 0 || from >= to {
		return nil
	}
	return c.items[from:to]
}
