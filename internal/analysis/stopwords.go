package analysis

import "strings"

var defaultEnglishStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "if", "in",
	"into", "is", "it", "no", "not", "of", "on", "or", "such", "that", "the",
	"their", "then", "there", "these", "they", "this", "to", "was", "will", "with",
	"he", "she", "we", "you", "my", "your", "his", "her", "its", "our",
	"me", "him", "us", "them", "who", "whom", "which", "what", "where", "when",
	"why", "how", "all", "any", "both", "each", "few", "more", "most", "other",
	"some", "nor", "only", "own", "same", "so", "than",
	"too", "very", "s", "t", "can", "just", "don", "should", "now",
	"d", "ll", "m", "re", "ve", "y", "ain", "aren", "couldn", "didn", "doesn",
	"am", "i", "have", "has", "had", "having", "might", "must", "need", "ought", "shall",
}

// DefaultEnglishStopWords returns a copy of the built-in English stop-word list.
func DefaultEnglishStopWords() []string {
	out := make([]string, len(defaultEnglishStopWords))
	copy(out, defaultEnglishStopWords)
	return out
}

// StopWordFilter drops tokens found in a fixed stop-word set. The set is built
// once at construction and never mutated afterwards.
type StopWordFilter struct {
	words map[string]struct{}
}

// NewStopWordFilter builds a filter over words, or over the default English
// list when no words are given.
func NewStopWordFilter(words ...string) *StopWordFilter {
	if len(words) == 0 {
		words = defaultEnglishStopWords
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &StopWordFilter{words: set}
}

// Contains reports whether word is a stop word, ignoring case.
func (f *StopWordFilter) Contains(word string) bool {
	_, ok := f.words[strings.ToLower(word)]
	return ok
}

func (f *StopWordFilter) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if f.Contains(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}
