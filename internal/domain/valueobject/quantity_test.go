package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity(t *testing.T) {
	q, err := NewQuantity(3)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Value())

	_, err = NewQuantity(0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewQuantity(-5)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestQuantity_Multiply(t *testing.T) {
	q, _ := NewQuantity(3)
	assert.Equal(t, 36, q.Multiply(MaterialMetal.PointsPerUnit()))
	assert.Equal(t, 30, q.Multiply(MaterialPlastico.PointsPerUnit()))
}
