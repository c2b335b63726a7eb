package analysis

import (
	"fmt"
	"strings"
)

// Analyzer names understood by ForName.
const (
	NameSimple   = "simple"
	NameSnowball = "snowball"
)

// Analyzer converts text into an ordered list of index terms. The same
// analyzer must be used for indexing and querying.
type Analyzer interface {
	Analyze(text string) []string
}

// Pipeline runs Tokenizer, Filter and Stemmer in that order. A nil Filter or
// Stemmer skips the stage.
type Pipeline struct {
	Tokenizer *Tokenizer
	Filter    *StopWordFilter
	Stemmer   Stemmer
}

func (p *Pipeline) Analyze(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	tokenizer := p.Tokenizer
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}
	tokens := tokenizer.Tokenize(text)
	if p.Filter != nil {
		tokens = p.Filter.Filter(tokens)
	}
	if p.Stemmer != nil {
		tokens = p.Stemmer.Stem(tokens)
	}
	return tokens
}

// NewSimpleAnalyzer returns the default pipeline: the English stop-word list,
// extended by extraStopWords, and the simplified Porter stemmer.
func NewSimpleAnalyzer(extraStopWords ...string) *Pipeline {
	return &Pipeline{
		Tokenizer: NewTokenizer(),
		Filter:    englishFilter(extraStopWords),
		Stemmer:   NewPorterStemmer(),
	}
}

// NewSnowballAnalyzer is NewSimpleAnalyzer with the Snowball English stemmer.
func NewSnowballAnalyzer(extraStopWords ...string) *Pipeline {
	return &Pipeline{
		Tokenizer: NewTokenizer(),
		Filter:    englishFilter(extraStopWords),
		Stemmer:   NewSnowballStemmer(),
	}
}

// ForName resolves an analyzer by configuration name.
func ForName(name string, extraStopWords []string) (Analyzer, error) {
	switch name {
	case NameSimple, "":
		return NewSimpleAnalyzer(extraStopWords...), nil
	case NameSnowball:
		return NewSnowballAnalyzer(extraStopWords...), nil
	default:
		return nil, fmt.Errorf("unknown analyzer %q", name)
	}
}

func englishFilter(extra []string) *StopWordFilter {
	if len(extra) == 0 {
		return NewStopWordFilter()
	}
	return NewStopWordFilter(append(DefaultEnglishStopWords(), extra...)...)
}
