package overlay

// cellState tracks whether a Cell has been resolved.
type cellState int

const (
	cellUnresolved cellState = iota
	cellResolved
	cellAbsent
)

// Cell memoizes a lookup against the host. The lookup runs on the first Get
// after construction or Invalidate; "not found" is remembered as well so the
// host is not queried every frame.
type Cell[T any] struct {
	lookup func() (T, bool)
	state  cellState
	value  T
}

// NewCell creates a cell backed by lookup.
func NewCell[T any](lookup func() (T, bool)) *Cell[T] {
	return &Cell[T]{lookup: lookup}
}

// Get resolves the cell if needed and returns the value and whether one was
// found.
func (c *Cell[T]) Get() (T, bool) {
	if c.state == cellUnresolved {
		v, ok := c.lookup()
		if ok {
			c.value = v
			c.state = cellResolved
		} else {
			var zero T
			c.value = zero
			c.state = cellAbsent
		}
	}
	return c.value, c.state == cellResolved
}

// Resolved reports whether a lookup has run since the last Invalidate.
func (c *Cell[T]) Resolved() bool {
	return c.state != cellUnresolved
}

// Invalidate forgets the cached result.
func (c *Cell[T]) Invalidate() {
	var zero T
	c.value = zero
	c.state = cellUnresolved
}
