package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "schoolapi/internal/errors"
	"schoolapi/internal/repository"
)

// lookupError maps a missing row to notFound and wraps anything else.
func lookupError(err, notFound error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", what, err)
}

// writeError maps constraint violations raised by a write to domain errors.
func writeError(err, duplicate error, what string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return duplicate
	case errors.Is(err, repository.ErrMissingReference):
		return apperrors.ErrInvalidReference
	}
	return fmt.Errorf("%s: %w", what, err)
}

// ensureUnique returns duplicate when find locates a row other than selfID.
func ensureUnique(find func() (uint, error), selfID uint, duplicate error, what string) error {
	id, err := find()
	if err == nil {
		if id != selfID {
			return duplicate
		}
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
