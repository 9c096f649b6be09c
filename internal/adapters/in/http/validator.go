package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo.Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// RequestValidationError lists every field problem of one request body.
type RequestValidationError struct {
	Problems []string
}

func (e *RequestValidationError) Error() string {
	return strings.Join(e.Problems, ", ")
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return &RequestValidationError{Problems: describe(fieldErrs)}
		}
		return err
	}
	return nil
}

func describe(fieldErrs validator.ValidationErrors) []string {
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if _, rest, found := strings.Cut(field, "."); found {
			field = rest
		}

		var problem string
		switch fe.Tag() {
		case "required":
			problem = fmt.Sprintf("%q is required", field)
		case "min":
			if fe.Kind() == reflect.Slice {
				problem = fmt.Sprintf("%q must contain at least %s item(s)", field, fe.Param())
			} else {
				problem = fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
			}
		case "oneof":
			problem = fmt.Sprintf("%q must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
		default:
			problem = fmt.Sprintf("%q failed on the %q rule", field, fe.Tag())
		}
		problems = append(problems, problem)
	}
	return problems
}
