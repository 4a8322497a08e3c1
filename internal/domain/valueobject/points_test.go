package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoints(t *testing.T) {
	p, err := NewPoints(50)
	require.NoError(t, err)
	assert.Equal(t, 50, p.Value())

	_, err = NewPoints(-1)
	assert.ErrorIs(t, err, ErrNegativePoints)

	zero, err := NewPoints(0)
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Value())
	assert.True(t, zero.Equals(ZeroPoints()))
}

func TestPoints_Add(t *testing.T) {
	a, _ := NewPoints(30)
	b, _ := NewPoints(12)

	sum := a.Add(b)
	assert.Equal(t, 42, sum.Value())
	// operands untouched
	assert.Equal(t, 30, a.Value())
	assert.Equal(t, 12, b.Value())
}

func TestPoints_Subtract(t *testing.T) {
	a, _ := NewPoints(30)
	b, _ := NewPoints(12)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, 18, diff.Value())

	_, err = b.Subtract(a)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 12, b.Value())

	same, err := a.Subtract(a)
	require.NoError(t, err)
	assert.Equal(t, 0, same.Value())
}

func TestPoints_Comparisons(t *testing.T) {
	a, _ := NewPoints(10)
	b, _ := NewPoints(20)

	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.LessThan(b))
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(a))
}
