package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Cycle  string `validate:"required,billingcycle"`
	Method string `validate:"paymentmethod"`
}

func TestCustomTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	tests := []struct {
		name  string
		in    sample
		valid bool
	}{
		{"monthly qris", sample{Cycle: "monthly", Method: "qris"}, true},
		{"yearly no method", sample{Cycle: "Yearly"}, true},
		{"bad cycle", sample{Cycle: "weekly", Method: "qris"}, false},
		{"bad method", sample{Cycle: "monthly", Method: "cash"}, false},
		{"missing cycle", sample{Method: "qris"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegister_Idempotent(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())
}
