package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"only separators", "  ,.;-! ", []string{}},
		{"lowercases", "Quick BROWN fox", []string{"quick", "brown", "fox"}},
		{"punctuation splits", "jumps,over;the-lazy.dog", []string{"jumps", "over", "the", "lazy", "dog"}},
		{"underscore and digits", "snake_case v2 42", []string{"snake_case", "v2", "42"}},
		{"unicode letters", "Café Über", []string{"café", "über"}},
		{"repeated spaces", " over  dog   lazy dog", []string{"over", "dog", "lazy", "dog"}},
	}
	tok := NewTokenizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.Tokenize(tt.text))
		})
	}
}

func TestStopWordFilter(t *testing.T) {
	f := NewStopWordFilter()

	assert.Equal(t, []string{}, f.Filter(nil))
	assert.Equal(t, []string{"quick", "fox"}, f.Filter([]string{"the", "quick", "fox", "and"}))
	assert.Equal(t, []string{"Fox"}, f.Filter([]string{"THE", "Fox", "Their"}), "comparison ignores case")
	assert.True(t, f.Contains("SHALL"))
	assert.False(t, f.Contains("fox"))
}

func TestStopWordFilter_Custom(t *testing.T) {
	f := NewStopWordFilter("lorem", "Ipsum")
	assert.Equal(t, []string{"the", "dolor"}, f.Filter([]string{"lorem", "the", "ipsum", "dolor"}))
}

func TestDefaultEnglishStopWordsIsCopy(t *testing.T) {
	words := DefaultEnglishStopWords()
	require.NotEmpty(t, words)
	words[0] = "fox"
	assert.True(t, NewStopWordFilter().Contains("a"))
	assert.False(t, NewStopWordFilter().Contains("fox"))
}

func TestPorterStemmer_StemWord(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"a", "a"},
		{"is", "is"},
		{"caresses", "caress"},
		{"glasses", "glass"},
		{"ponies", "poni"},
		{"caress", "caress"},
		{"cats", "cat"},
		{"dogs", "dog"},
		{"gas", "gas"},
		{"agreed", "agree"},
		{"feed", "fe"},
		{"plastered", "plaster"},
		{"bled", "bled"},
		{"motoring", "motor"},
		{"running", "runn"},
		{"sing", "sing"},
		{"happy", "happi"},
		{"day", "day"},
		{"cry", "cri"},
		{"quickly", "quickli"},
		{"relational", "rel"},
		{"conditional", "condi"},
		{"movement", "move"},
		{"rent", "rent"},
		{"connection", "connect"},
		{"national", "national"},
		{"fox", "fox"},
		{"jumps", "jump"},
	}
	s := NewPorterStemmer()
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, s.StemWord(tt.word))
		})
	}
}

func TestPorterStemmer_Idempotent(t *testing.T) {
	words := []string{
		"dogs", "running", "agreed", "happy", "connection", "jumps",
		"national", "glasses", "ponies", "movement", "quick", "fox",
	}
	s := NewPorterStemmer()
	for _, w := range words {
		once := s.StemWord(w)
		assert.Equal(t, once, s.StemWord(once), "stem(stem(%q))", w)
	}
}

func TestPorterStemmer_Stem(t *testing.T) {
	s := NewPorterStemmer()
	in := []string{"jumps", "fox", "lazy", "dogs"}
	out := s.Stem(in)
	require.Len(t, out, len(in))
	assert.Equal(t, []string{"jump", "fox", "lazi", "dog"}, out)
	assert.Equal(t, []string{}, s.Stem([]string{}))
}

func TestSnowballStemmer(t *testing.T) {
	s := NewSnowballStemmer()
	assert.Equal(t, []string{"run", "dog", "jump"}, s.Stem([]string{"running", "dogs", "jumps"}))
}

func TestSimpleAnalyzer(t *testing.T) {
	a := NewSimpleAnalyzer()

	assert.Equal(t, []string{}, a.Analyze(""))
	assert.Equal(t, []string{}, a.Analyze("   \t\n"))
	assert.Equal(t, []string{"quick", "fox", "jump"}, a.Analyze("the quick fox jumps"))
	assert.Equal(t, []string{"runn", "dog"}, a.Analyze("Running dogs"))
	assert.Equal(t, []string{}, a.Analyze("The AND of"))
}

func TestSimpleAnalyzer_ExcludesStopWords(t *testing.T) {
	a := NewSimpleAnalyzer()
	text := "The Quick BROWN fox AND Their dog WILL jump INTO Some water " +
		strings.ToUpper(strings.Join(DefaultEnglishStopWords(), " "))

	filter := NewStopWordFilter()
	terms := a.Analyze(text)
	require.NotEmpty(t, terms)
	for _, term := range terms {
		assert.False(t, filter.Contains(term), "stop word %q survived analysis", term)
	}
}

func TestSimpleAnalyzer_ExtraStopWords(t *testing.T) {
	a := NewSimpleAnalyzer("fox")
	assert.Equal(t, []string{"quick"}, a.Analyze("the quick fox"))
}

func TestPipeline_SkipsNilStages(t *testing.T) {
	p := &Pipeline{}
	assert.Equal(t, []string{"the", "dogs"}, p.Analyze("The dogs"))
}

func TestForName(t *testing.T) {
	a, err := ForName(NameSimple, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog"}, a.Analyze("dogs"))

	a, err = ForName(NameSnowball, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"run"}, a.Analyze("running"))

	_, err = ForName("ngram", nil)
	assert.Error(t, err)
}
