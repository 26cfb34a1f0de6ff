package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell_ResolvesOnce(t *testing.T) {
	calls := 0
	c := NewCell(func() (int, bool) {
		calls++
		return 42, true
	})

	assert.False(t, c.Resolved())

	v, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = c.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
	assert.True(t, c.Resolved())
}

func TestCell_RemembersAbsent(t *testing.T) {
	calls := 0
	c := NewCell(func() (string, bool) {
		calls++
		return "", false
	})

	for i := 0; i < 3; i++ {
		_, ok := c.Get()
		assert.False(t, ok)
	}
	assert.Equal(t, 1, calls)
	assert.True(t, c.Resolved())
}

func TestCell_Invalidate(t *testing.T) {
	value := 1
	c := NewCell(func() (int, bool) {
		return value, true
	})

	v, _ := c.Get()
	assert.Equal(t, 1, v)

	value = 2
	v, _ = c.Get()
	assert.Equal(t, 1, v, "cached value until invalidated")

	c.Invalidate()
	assert.False(t, c.Resolved())

	v, _ = c.Get()
	assert.Equal(t, 2, v)
}
