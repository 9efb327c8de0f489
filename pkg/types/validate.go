package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		// Numeric tags on salaries compare against the decimal's float value.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		v.RegisterStructValidation(salaryFits, NewRole{}, RoleUpdate{})
		validate = v
	})
	return validate
}

// maxSalary is the exclusive bound of a DECIMAL(12,2) column.
var maxSalary = decimal.New(1, 10)

// SalaryFits reports whether d has at most two decimal places and fits a
// DECIMAL(12,2) column.
func SalaryFits(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxSalary)
}

// salaryFits runs on the whole struct because the salary tags only see the
// float64 form of the decimal.
func salaryFits(sl validator.StructLevel) {
	var salary decimal.Decimal
	switch in := sl.Current().Interface().(type) {
	case NewRole:
		salary = in.Salary
	case RoleUpdate:
		salary = in.Salary
	default:
		return
	}
	if !SalaryFits(salary) {
		sl.ReportError(salary, "salary", "Salary", "money", "")
	}
}

// Validate checks v against its validate tags and, when v has a Check
// method, its cross-field rules. Failures wrap ErrInvalidArgument.
func Validate(v any) error {
	if err := validatorInstance().Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return invalidf("%s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	if c, ok := v.(interface{ Check() error }); ok {
		return c.Check()
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "money":
		return fe.Field() + " must have at most 2 decimal places and be below 10,000,000,000"
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
