package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "surveypulse/internal/errors"
	"surveypulse/pkg/contracts/domain"
)

// Validator decodes JSON request bodies and validates them against struct tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the survey specific rules registered
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterValidation("questiontype", isQuestionType)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Decode reads the JSON body of r into dst and validates it. Errors are
// APIErrors ready for the error handler.
func (v *Validator) Decode(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apierrors.New(http.StatusBadRequest, apierrors.CodeInvalidRequest, "Request body is required")
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apierrors.NewWithDetails(http.StatusRequestEntityTooLarge, apierrors.CodePayloadTooLarge,
				"Request body exceeds maximum allowed size",
				map[string]interface{}{"max_size": maxErr.Limit})
		case errors.Is(err, io.EOF):
			return apierrors.New(http.StatusBadRequest, apierrors.CodeInvalidRequest, "Request body is required")
		default:
			return apierrors.InvalidRequestWithError(err)
		}
	}

	return v.Struct(dst)
}

// Struct validates a struct and returns validation errors
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fieldPath(fe.Namespace()),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(validationErrors)
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "questiontype":
		return fmt.Sprintf("%s must be a known question type", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

func isQuestionType(fl validator.FieldLevel) bool {
	switch domain.QuestionType(fl.Field().String()) {
	case domain.QuestionTypeMultipleChoice, domain.QuestionTypeCheckboxes,
		domain.QuestionTypeTextShort, domain.QuestionTypeTextLong,
		domain.QuestionTypeRating, domain.QuestionTypeScale,
		domain.QuestionTypeDate, domain.QuestionTypeTime, domain.QuestionTypeDateTime,
		domain.QuestionTypeFileUpload, domain.QuestionTypeMatrix,
		domain.QuestionTypeRanking, domain.QuestionTypeDemographic:
		return true
	}
	return false
}
