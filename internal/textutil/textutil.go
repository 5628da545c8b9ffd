// Package textutil provides word-shape and tokenization helpers for tagging.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var tokenizeRe = regexp.MustCompile(`[\p{L}\p{N}_]+(?:['’][\p{L}]+)*|[^\s\p{L}\p{N}_]`)

// Tokenize splits raw text into word and punctuation tokens.
// Runs of letters/digits form one token (keeping inner apostrophes, "don't"),
// every other non-space rune is a token on its own.
func Tokenize(text string) []string {
	return tokenizeRe.FindAllString(text, -1)
}

// Prefix returns the first n runes of s, or s itself if it is shorter.
func Prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Suffix returns the last n runes of s, or s itself if it is shorter.
func Suffix(s string, n int) string {
	end := len(s)
	for i := 0; i < n && end > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return s[end:]
}

// RuneLen returns the number of runes in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// StartsUpper reports whether the first rune of s is upper case.
func StartsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// EndsWith reports whether the last rune of s is r.
func EndsWith(s string, r rune) bool {
	last, _ := utf8.DecodeLastRuneInString(s)
	return s != "" && last == r
}

// HasDigit reports whether s contains at least one decimal digit.
func HasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and multiple whitespace with a single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(text, " "))
}
