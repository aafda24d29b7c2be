package source

import (
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/unicode/norm"
)

// WordCount counts whitespace separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Normalize returns text in Unicode NFC so that the enhancer sees composed
// characters regardless of how the input was typed.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// LooksLikeJSON reports whether input parses as JSON. Form input that does
// is treated as enhancer output rather than text to enhance.
func LooksLikeJSON(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false
	}
	return gjson.Valid(trimmed)
}
