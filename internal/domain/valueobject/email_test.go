package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	e, err := NewEmail("joana@reciclaqui.dev")
	require.NoError(t, err)
	assert.Equal(t, "joana@reciclaqui.dev", e.Value())

	for _, bad := range []string{"", "no-at-sign", "a@b", "spaces in@mail.com", "@missing.local"} {
		_, err := NewEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, "input %q", bad)
	}
}

func TestPassword(t *testing.T) {
	p, err := NewPassword("password123")
	require.NoError(t, err)
	assert.NotEmpty(t, p.Hash())
	assert.NotEqual(t, "password123", p.Hash())

	assert.True(t, p.Compare("password123"))
	assert.False(t, p.Compare("wrongpass"))

	_, err = NewPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	rebuilt := PasswordFromHash(p.Hash())
	assert.True(t, rebuilt.Compare("password123"))
}
