// Package analysis turns raw field text into normalised index terms. The
// default pipeline lower-cases and splits text into word tokens, removes
// English stop-words and applies a simplified Porter stemmer.
package analysis

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into lower-cased word tokens. A token is a maximal run
// of letters, digits and underscores; every other rune is a separator.
type Tokenizer struct{}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}
	words := strings.FieldsFunc(text, isSeparator)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		tokens = append(tokens, strings.ToLower(word))
	}
	return tokens
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
