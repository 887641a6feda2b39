package handlers

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestCurrencyValidator(t *testing.T) {
	type payload struct {
		Code string `binding:"required,currency"`
	}

	tests := []struct {
		code  string
		valid bool
	}{
		{"USD", true},
		{"eur", true},
		{"Jpy", true},
		{"XYZ", false},
		{"US", false},
		{"USDT", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(payload{Code: tt.code})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
