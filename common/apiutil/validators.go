package apiutil

import (
	"reflect"
	"strings"

	"github.com/Aidin1998/studysheets/pkg/errors"
	"github.com/go-playground/validator/v10"
)

func NewValidator() *Validator {
	validator := validator.New()
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validator}
}

type Validator struct {
	validator *validator.Validate
}

// Validate checks i against its validate tags. The first failing field names the message.
func (v *Validator) Validate(i interface{}, message string) error {
	if err := v.validator.Struct(i); err != nil {
		validationErr := errors.Invalid.Explain("%s", message)
		var fieldsError validator.ValidationErrors
		if errors.As(err, &fieldsError) {
			for _, fieldErr := range fieldsError {
				validationErr = validationErr.WithField(fieldErr.Tag(), fieldErr.Field(), "")
			}
		}
		return validationErr
	}
	return nil
}
