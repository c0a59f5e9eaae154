package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// usernameに使える文字は英数字と @.+-_
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// RequestValidator plugs validator/v10 into echo.Echo.Validator and turns
// failures into field-keyed 400s.
type RequestValidator struct {
	v *validator.Validate
}

func New() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// エラーのキーはJSON名
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	must(v.RegisterValidation("snippet_language", func(fl validator.FieldLevel) bool {
		_, ok := model.Languages[fl.Field().String()]
		return ok
	}))
	must(v.RegisterValidation("snippet_style", func(fl validator.FieldLevel) bool {
		_, ok := model.Styles[fl.Field().String()]
		return ok
	}))
	must(v.RegisterValidation("membership", func(fl validator.FieldLevel) bool {
		_, ok := model.Memberships[model.Membership(fl.Field().String())]
		return ok
	}))
	must(v.RegisterValidation("payment_status", func(fl validator.FieldLevel) bool {
		_, ok := model.PaymentStatuses[model.PaymentStatus(fl.Field().String())]
		return ok
	}))
	must(v.RegisterValidation("unit_price", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= 0 && n <= model.MaxUnitPrice
	}))
	must(v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	}))

	return &RequestValidator{v: v}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate satisfies echo.Validator.
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Field()
		if _, exists := fields[key]; exists {
			continue
		}
		fields[key] = message(fe)
	}
	return usecase.NewValidationError(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "uuid":
		return fmt.Sprintf("“%v” is not a valid UUID.", fe.Value())
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "unit_price":
		return fmt.Sprintf("Ensure this value is between 0.00 and %s.", model.Money(model.MaxUnitPrice))
	case "snippet_language", "snippet_style", "membership", "payment_status", "oneof":
		return fmt.Sprintf("\"%v\" is not a valid choice.", fe.Value())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "min":
		if isString(fe.Kind()) {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if isString(fe.Kind()) {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return "Invalid value."
	}
}

func isString(k reflect.Kind) bool {
	return k == reflect.String
}
