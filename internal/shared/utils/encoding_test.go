package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain text", "hello world"},
		{"unicode", "naïve résumé ☺"},
		{"multiline", "line one\nline two"},
		{"html-ish", "<b>bold</b> & \"quoted\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeText(tt.input)
			assert.NotEqual(t, tt.input, encoded)
			assert.Equal(t, tt.input, DecodeText(encoded))
		})
	}
}

func TestEncodeTextEmpty(t *testing.T) {
	assert.Equal(t, "", EncodeText(""))
	assert.Equal(t, "", DecodeText(""))
}

func TestDecodeTextMalformed(t *testing.T) {
	// Bad input decodes to empty rather than erroring the read.
	assert.Equal(t, "", DecodeText("!!not-base64!!"))
}
