package handlers

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// isoValidator checks codes against the ISO 4217 list after normalization.
var isoValidator = validator.New()

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		panic("handlers: gin binding validator is not go-playground/validator")
	}
	if err := v.RegisterValidation("currency", validateCurrencyCode); err != nil {
		panic("handlers: registering currency validator: " + err.Error())
	}
}

// validateCurrencyCode accepts ISO 4217 codes in any letter case.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return len(code) == 3 && isoValidator.Var(code, "iso4217") == nil
}
