package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reporta errores con el nombre JSON del campo
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// GetExchangeRateRequest representa el body de POST /v1/fx/rate
// @Description Currency pair to quote
type GetExchangeRateRequest struct {
	FromCurrency string `json:"from_currency" example:"GTQ" validate:"required,max=8"`
	ToCurrency   string `json:"to_currency" example:"USD" validate:"required,max=8"`
}

// ConvertRequest representa el body de POST /v1/fx/convert
// @Description Amount to convert between two currencies
type ConvertRequest struct {
	FromCurrency string `json:"from_currency" example:"GTQ" validate:"required,max=8"`
	ToCurrency   string `json:"to_currency" example:"USD" validate:"required,max=8"`
	// Amount es puntero para distinguir 0 de ausente
	Amount *float64 `json:"amount" example:"100" validate:"required,gte=0"`
}

// GetRatesRequest representa el body de POST /v1/fx/rates
// @Description Base currency and optional target filter
type GetRatesRequest struct {
	BaseCurrency     string   `json:"base_currency" example:"USD" validate:"required,max=8"`
	TargetCurrencies []string `json:"target_currencies" example:"EUR,GTQ" validate:"omitempty,max=64,dive,max=8"`
}

// Validate valida la request
func (r *GetExchangeRateRequest) Validate() error {
	return validateStruct(r)
}

// Validate valida la request
func (r *ConvertRequest) Validate() error {
	return validateStruct(r)
}

// Validate valida la request
func (r *GetRatesRequest) Validate() error {
	return validateStruct(r)
}

// validateStruct turns validator errors into a single readable message keyed by JSON field name
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return errors.New(strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s exceeds max length %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
