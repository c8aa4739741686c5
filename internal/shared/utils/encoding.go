package utils

import "encoding/base64"

// Free-text fields (blurb, biography) are stored base64-encoded so they
// survive transport and storage untouched. Encoding happens once at
// submission intake; decoding happens on every read projection.

// EncodeText base64-encodes a free-text field. Empty stays empty.
func EncodeText(s string) string {
	if s == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// DecodeText decodes a stored free-text field. Malformed input decodes
// to the empty string rather than failing the whole read.
func DecodeText(s string) string {
	if s == "" {
		return ""
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return ""
	}
	return string(decoded)
}
