package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{name: "Valid number", number: "4561261212345467", valid: true},
		{name: "Valid number with spaces", number: "4561 2612 1234 5467", valid: true},
		{name: "Bad checksum", number: "4561261212345462", valid: false},
		{name: "Non-digit characters", number: "4561-2612-1234-5467", valid: false},
		{name: "Empty string", number: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsCardNumber(tt.number))
		})
	}
}
