package containers

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"github.com/mmynk/billed/internal/models"
)

// submission is the part of the new-bill form that must be valid before
// the receipt is uploaded.
type submission struct {
	FileName string `validate:"required,receipt"`
	Type     string `validate:"required,expense_type"`
	Date     string `validate:"required,datetime=2006-01-02"`
	Amount   string `validate:"required,numeric,positive_amount"`
	VAT      string `validate:"omitempty,numeric"`
	Pct      string `validate:"required,number,pct"`
}

// maxPct is the highest VAT percentage the form accepts.
const maxPct = 100

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	must(v.RegisterValidation("receipt", func(fl validator.FieldLevel) bool {
		return models.IsAllowedReceipt(fl.Field().String())
	}))
	must(v.RegisterValidation("expense_type", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.ExpenseTypes, models.ExpenseType(fl.Field().String()))
	}))
	must(v.RegisterValidation("positive_amount", func(fl validator.FieldLevel) bool {
		amount, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && amount > 0 && !math.IsInf(amount, 0)
	}))
	must(v.RegisterValidation("pct", func(fl validator.FieldLevel) bool {
		pct, err := strconv.Atoi(fl.Field().String())
		return err == nil && pct >= 0 && pct <= maxPct
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// check returns every invalid field of s as one error, or nil.
func (s submission) check() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var result *multierror.Error
	for _, fe := range fieldErrs {
		result = multierror.Append(result, fmt.Errorf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	return result.ErrorOrNil()
}
