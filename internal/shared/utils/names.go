package utils

import (
	"strings"
	"unicode"
)

// NormalizeGuestName title-cases each space-separated word: first rune
// upper, remainder lower. Canonical guest rows always store this form,
// and identity resolution matches against it, so the output must be
// stable across call sites.
func NormalizeGuestName(name string) string {
	if name == "" {
		return name
	}

	words := strings.Split(name, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
