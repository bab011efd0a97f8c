package cyber

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/metasystem/steering/pkg/errors"
)

// validate is a singleton validator instance with the enumeration tags
// registered and field names reported by their JSON key.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("system_class", func(fl validator.FieldLevel) bool {
		return SystemClass(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("control_system_type", func(fl validator.FieldLevel) bool {
		return ControlSystemType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("relation_type", func(fl validator.FieldLevel) bool {
		return RelationType(fl.Field().String()).Valid()
	})
	return v
}

// Validator returns the shared validator so other packages (config, server
// request bodies) apply the same tag conventions.
func Validator() *validator.Validate { return validate }

// ValidateObject checks a single object against its struct tags.
func ValidateObject(o *Object) error {
	if o == nil {
		return errors.New("object cannot be nil")
	}
	return FormatValidationError(validate.Struct(o))
}

// ValidateCorrelation checks a single correlation against its struct tags.
// Endpoints are not resolved here; dangling endpoints are legal.
func ValidateCorrelation(c *Correlation) error {
	if c == nil {
		return errors.New("correlation cannot be nil")
	}
	return FormatValidationError(validate.Struct(c))
}

// ValidateObjects validates every object and returns an INVALID_OBJECT error
// naming the first offending element. Duplicate ids are not an error.
func ValidateObjects(objects []Object) error {
	for i := range objects {
		if err := ValidateObject(&objects[i]); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidObject, err, "objects[%d] (id %q)", i, objects[i].ID)
		}
	}
	return nil
}

// ValidateCorrelations validates every correlation and returns an
// INVALID_CORRELATION error naming the first offending element.
func ValidateCorrelations(correlations []Correlation) error {
	for i := range correlations {
		if err := ValidateCorrelation(&correlations[i]); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidCorrelation, err, "correlations[%d] (id %q)", i, correlations[i].ID)
		}
	}
	return nil
}

// FormatValidationError converts validator errors to a more user-friendly format.
// Only the first failing field is reported.
func FormatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), strings.SplitN(e.Namespace(), ".", 2)[0]+".")
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %q", field, param, e.Value())
		case "system_class":
			return fmt.Errorf("%s: unknown system class %q", field, e.Value())
		case "control_system_type":
			return fmt.Errorf("%s: unknown control system type %q", field, e.Value())
		case "relation_type":
			return fmt.Errorf("%s: unknown relation type %q", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
