package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateStruct runs the struct's validate tags and reports every failed
// field in one validation error.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate %T: %w", v, err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Namespace(), e.Tag()))
	}
	return NewDomainError(KindValidation, "%s", strings.Join(messages, "; "))
}

// uniqueIDs returns ids without duplicates, keeping first occurrences in order.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func checkBatch(ids []uint, status *int) ([]uint, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, NewDomainError(KindValidation, "at least one id is required")
	}
	for _, id := range ids {
		if id == 0 {
			return nil, NewDomainError(KindValidation, "invalid id 0")
		}
	}
	if status != nil && *status != 0 && *status != 1 {
		return nil, NewDomainError(KindValidation, "status must be 0 or 1, got %d", *status)
	}
	return ids, nil
}
