// Package validation checks candidate records against their declared field
// constraints before any command is built from them.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Engine wraps a validator configured with the depot rules:
//   - companyid: ^[A-Z0-9]{9}$
//   - unitnumber: ^[A-Z]{4}[X0-9]{6}[A-Z0-9]?$, at most 11 characters
//   - currency: three uppercase letters
//   - alnumcode: uppercase letters and digits
//
// decimal.Decimal fields are compared as numbers, so gte=0 applies to amounts.
type Engine struct {
	validate *validator.Validate
}

func NewEngine() *Engine {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "companyid", patternRule(kernel.CompanyIDPattern.MatchString))
	mustRegister(v, "unitnumber", patternRule(func(s string) bool {
		return len(s) <= kernel.UnitNumberMaxLength && kernel.UnitNumberPattern.MatchString(s)
	}))
	mustRegister(v, "currency", patternRule(kernel.CurrencyPattern.MatchString))
	mustRegister(v, "alnumcode", patternRule(kernel.AlnumCodePattern.MatchString))

	return &Engine{validate: v}
}

// Validate returns nil or an *errs.ValidationError listing every violation
// in field declaration order.
func (e *Engine) Validate(candidate any) error {
	err := e.validate.Struct(candidate)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %T: %w", candidate, err)
	}

	violations := make([]errs.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, errs.FieldViolation{
			Field:   fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return errs.NewValidationError(violations...)
}

var (
	defaultEngine *Engine
	defaultOnce   sync.Once
)

// Validate checks candidate with a shared Engine.
func Validate(candidate any) error {
	defaultOnce.Do(func() { defaultEngine = NewEngine() })
	return defaultEngine.Validate(candidate)
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s rule: %v", tag, err))
	}
}

func patternRule(match func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return match(fl.Field().String())
	}
}

// fieldPath drops the top level type name: "Redelivery.details[0].units[1].unitNumber"
// becomes "details[0].units[1].unitNumber".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	collection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map
	switch fe.Tag() {
	case "required", "required_if", "required_with":
		return "is required"
	case "max":
		if collection {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		if collection {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "email":
		return "must be a valid email address"
	case "companyid":
		return "must be a 9 character EDI company id"
	case "unitnumber":
		return "must be a valid unit number"
	case "currency":
		return "must be a 3 letter currency code"
	case "alnumcode":
		return "must contain only uppercase letters and digits"
	default:
		return fmt.Sprintf("failed the %s rule", fe.Tag())
	}
}
