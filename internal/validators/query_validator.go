package validators

import (
	stderrors "errors"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tawdifak-listings/internal/errors"
	"tawdifak-listings/internal/listing"
)

type queryValidator struct{}

func NewQueryValidator() QueryValidator {
	return &queryValidator{}
}

// ValidateQuery applies the binding rules declared on listing.Query, for
// queries that did not come through ShouldBindQuery, then the checks the
// tags cannot express.
func (v *queryValidator) ValidateQuery(q listing.Query) error {
	if err := binding.Validator.ValidateStruct(q); err != nil {
		return InvalidQuery(err)
	}

	fields := map[string]string{
		"q":        q.Search,
		"country":  q.Country,
		"city":     q.City,
		"category": q.Category,
	}
	for name, value := range fields {
		if strings.IndexFunc(value, unicode.IsControl) >= 0 {
			return errors.InvalidParameters("%s contains control characters", name)
		}
	}
	return nil
}

// InvalidQuery turns a query binding or validation failure into an
// INVALID_PARAMETERS error naming the first offending field.
func InvalidQuery(err error) error {
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Param() != "" {
			return errors.InvalidParameters("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return errors.InvalidParameters("%s must satisfy %s", fe.Field(), fe.Tag())
	}
	return errors.InvalidParameters("%v", err)
}
