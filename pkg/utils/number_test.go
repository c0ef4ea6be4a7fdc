package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "zero", input: 0, expected: 0},
		{name: "arredonda para cima", input: 1.005, expected: 1.01},
		{name: "arredonda para baixo", input: 2.344, expected: 2.34},
		{name: "negativo", input: -2.345, expected: -2.35},
		{name: "já arredondado", input: 480, expected: 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundWithTwoDecimalPlace(tt.input))
		})
	}
}

func TestRoundWithOneDecimalPlace(t *testing.T) {
	assert.Equal(t, 12.5, RoundWithOneDecimalPlace(12.45))
	assert.Equal(t, -3.3, RoundWithOneDecimalPlace(-3.333))
	assert.Equal(t, 0.0, RoundWithOneDecimalPlace(0))
}
