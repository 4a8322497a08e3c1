package valueobject

import (
	"errors"
	"regexp"
)

var ErrInvalidEmail = errors.New("invalid email format")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a validated email address in local@domain.tld shape.
type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	if !emailPattern.MatchString(value) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

func (e Email) Value() string { return e.value }

func (e Email) Equals(other Email) bool { return e.value == other.value }
