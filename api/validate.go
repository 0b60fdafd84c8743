package api

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/farhanrmdhni/portfolio-backend/errs"
)

// validationError converts an ozzo-validation error into the API error
// envelope, reporting the first failing field (alphabetically, for
// stable output).
func validationError(err error) error {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return errs.NewBadRequestError(err.Error())
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		return errs.NewValidationError(field, fieldErrs[field].Error())
	}
	return errs.NewBadRequestError(err.Error())
}
