package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGuestName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "jane doe", "Jane Doe"},
		{"already normalized", "Jane Doe", "Jane Doe"},
		{"all caps", "JANE DOE", "Jane Doe"},
		{"mixed case", "jAnE dOe", "Jane Doe"},
		{"single word", "cher", "Cher"},
		{"double space preserved", "jane  doe", "Jane  Doe"},
		{"empty", "", ""},
		{"unicode initial", "élodie duval", "Élodie Duval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeGuestName(tt.input))
		})
	}
}

func TestNormalizeGuestNameStable(t *testing.T) {
	// Resolver equality depends on normalization being idempotent.
	once := NormalizeGuestName("jane q. doe")
	assert.Equal(t, once, NormalizeGuestName(once))
}
