package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gudang/internal/apperr"
)

// notFound maps gorm.ErrRecordNotFound to an apperr not-found error and wraps
// anything else.
func notFound(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(resource, id).Wrap(err)
	}
	return fmt.Errorf("failed to get %s %v: %w", resource, id, err)
}

// referenceError turns a foreign key violation into a validation error on
// field. It returns nil for any other error.
func referenceError(err error, field string) error {
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		return nil
	}
	return apperr.Validation(map[string]string{
		field: fmt.Sprintf("%s does not exist", field),
	}).Wrap(err)
}
