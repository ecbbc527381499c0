package tfidf

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tokenRegex matches words of two or more letters, compiled once at package
// initialization.
var tokenRegex = regexp.MustCompile(`[a-zA-Z]{2,}`)

// accentStripper decomposes accented characters and drops the combining
// marks, so "café" and "cafe" vectorize identically.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// tokenize lowercases, strips accents, extracts word tokens, removes English
// stop words, and appends bigrams up to the configured n-gram size.
func tokenize(text string, ngram int) []string {
	if stripped, _, err := transform.String(accentStripper, text); err == nil {
		text = stripped
	}
	raw := tokenRegex.FindAllString(strings.ToLower(text), -1)

	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if _, stop := stopWords[w]; !stop {
			words = append(words, w)
		}
	}

	if ngram < 2 {
		return words
	}
	tokens := make([]string, 0, len(words)*2)
	tokens = append(tokens, words...)
	for n := 2; n <= ngram; n++ {
		for i := 0; i+n <= len(words); i++ {
			tokens = append(tokens, strings.Join(words[i:i+n], " "))
		}
	}
	return tokens
}
