package database

import (
	"errors"
	"fmt"

	"blogify/internal/core/apperror"

	"gorm.io/gorm"
)

// translate maps gorm's not-found to the domain error and wraps everything
// else with the failing operation.
func translate(err error, op, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("%s", notFound)
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
