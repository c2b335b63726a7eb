package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball"
)

// Stemmer reduces tokens to root forms. Implementations return exactly one
// output per input, in order.
type Stemmer interface {
	Stem(tokens []string) []string
}

// Derivational suffixes, removed first-match in list order.
var commonSuffixes = []string{
	"ational", "tional", "enci", "anci", "izer", "ator", "alli", "alism",
	"fulness", "ousness", "iveness", "ment", "ent", "ion", "ou", "ism",
	"ate", "iti", "ous", "ive", "ize",
}

// PorterStemmer is a simplified Porter stemmer: plural normalisation,
// -eed/-ed/-ing handling, terminal y to i, then one derivational suffix.
type PorterStemmer struct{}

func NewPorterStemmer() *PorterStemmer {
	return &PorterStemmer{}
}

func (s *PorterStemmer) Stem(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = s.StemWord(tok)
	}
	return out
}

func (s *PorterStemmer) StemWord(word string) string {
	if utf8.RuneCountInString(word) <= 2 {
		return word
	}
	word = removePlurals(word)
	word = handleVerbEndings(word)
	word = convertYToI(word)
	return removeCommonSuffix(word)
}

func removePlurals(word string) string {
	switch {
	case strings.HasSuffix(word, "sses"), strings.HasSuffix(word, "ies"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ss"):
		return word
	case strings.HasSuffix(word, "s") && runeLen(word) > 3:
		return word[:len(word)-1]
	}
	return word
}

func handleVerbEndings(word string) string {
	n := runeLen(word)
	if strings.HasSuffix(word, "eed") && n > 4 {
		return word[:len(word)-1]
	}
	if strings.HasSuffix(word, "ed") && n > 3 {
		if stem := word[:len(word)-2]; containsVowel(stem) {
			return stem
		}
	}
	if strings.HasSuffix(word, "ing") && n > 4 {
		if stem := word[:len(word)-3]; containsVowel(stem) {
			return stem
		}
	}
	return word
}

func convertYToI(word string) string {
	if !strings.HasSuffix(word, "y") || runeLen(word) <= 2 {
		return word
	}
	head := word[:len(word)-1]
	penultimate, _ := utf8.DecodeLastRuneInString(head)
	if isVowel(penultimate) {
		return word
	}
	return head + "i"
}

func removeCommonSuffix(word string) string {
	n := runeLen(word)
	for _, suffix := range commonSuffixes {
		if n > len(suffix)+2 && strings.HasSuffix(word, suffix) {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

func containsVowel(s string) bool {
	return strings.IndexFunc(s, isVowel) >= 0
}

// isVowel counts y as a vowel unconditionally.
func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// SnowballStemmer applies the Snowball English stemmer. Words the stemmer
// rejects pass through unchanged.
type SnowballStemmer struct{}

func NewSnowballStemmer() *SnowballStemmer {
	return &SnowballStemmer{}
}

func (s *SnowballStemmer) Stem(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		stemmed, err := snowball.Stem(tok, "english", true)
		if err != nil || stemmed == "" {
			stemmed = tok
		}
		out[i] = stemmed
	}
	return out
}
