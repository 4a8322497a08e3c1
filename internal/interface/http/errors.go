package handlers

import (
	"errors"
	"net/http"

	"github.com/reciclaqui/backend/internal/application"
	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/repository"
	"github.com/reciclaqui/backend/internal/domain/valueobject"
)

// badRequestErrs are domain-rule violations surfaced to clients as 400s.
var badRequestErrs = []error{
	entity.ErrNotOwner,
	entity.ErrAlreadyResponded,
	entity.ErrRoleMismatch,
	entity.ErrInvalidAmount,
	valueobject.ErrInsufficientPoints,
	valueobject.ErrInvalidMaterialType,
	valueobject.ErrInvalidQuantity,
	valueobject.ErrNegativePoints,
	valueobject.ErrInvalidEmail,
	valueobject.ErrPasswordTooShort,
	application.ErrEmailTaken,
}

// statusFor maps domain and application errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
