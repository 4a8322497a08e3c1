package valueobject

import (
	"errors"

	"github.com/reciclaqui/backend/pkg/helpers"
)

var ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

const minPasswordLength = 8

// Password holds a bcrypt hash. The plain text is validated and hashed
// on construction and is never stored.
type Password struct {
	hash string
}

func NewPassword(plain string) (Password, error) {
	if len(plain) < minPasswordLength {
		return Password{}, ErrPasswordTooShort
	}
	hash, err := helpers.HashPassword(plain)
	if err != nil {
		return Password{}, err
	}
	return Password{hash: hash}, nil
}

// PasswordFromHash rebuilds a Password from an already-hashed value, for
// loading from storage.
func PasswordFromHash(hash string) Password {
	return Password{hash: hash}
}

// Compare reports whether plain matches the stored hash.
func (p Password) Compare(plain string) bool {
	return helpers.CompareHashAndPassword(p.hash, plain)
}

func (p Password) Hash() string { return p.hash }
