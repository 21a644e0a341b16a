package services

import (
	"fmt"

	"gudang/internal/apperr"
	"gudang/pkg/validator"
)

var validate = validator.New()

// validateInput runs tag validation on in, merging extra field errors found
// by hand-written checks.
func validateInput(in any, extra map[string]string) error {
	fields, err := validate.Fields(in)
	if err != nil {
		return fmt.Errorf("validate input: %w", err)
	}
	for k, v := range extra {
		if fields == nil {
			fields = map[string]string{}
		}
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}
