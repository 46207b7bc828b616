// Package content extracts hashtags and mentions from post text.
//
// Extraction is pure and deterministic: no I/O, no state. A token is a marker
// character (# or @) followed by one or more word characters, where word
// characters include Unicode letters, digits and underscore. Adjacent
// punctuation terminates the token.
package content

import (
	"strings"
	"unicode"
)

// ExtractHashtags returns the hashtags in text, markers stripped and
// lower-cased, in first-occurrence order. Duplicates are preserved.
func ExtractHashtags(text string) []string {
	return extract(text, '#')
}

// ExtractMentions returns the mention handles in text, markers stripped and
// lower-cased, in first-occurrence order. Duplicates are preserved.
func ExtractMentions(text string) []string {
	return extract(text, '@')
}

func extract(text string, marker rune) []string {
	tokens := []string{}
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		if runes[i] != marker {
			continue
		}
		j := i + 1
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}
		if j > i+1 {
			tokens = append(tokens, strings.ToLower(string(runes[i+1:j])))
		}
		i = j - 1
	}

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
