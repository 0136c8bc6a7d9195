package phonetic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexity(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  int
	}{
		{name: "simple CVC", words: []string{"CAT", "BAT", "HAT", "DOG", "PIG", "SUN", "CUP", "BED"}, want: 1},
		{name: "final blend only", words: []string{"lamp"}, want: 1},
		{name: "consonant blend", words: []string{"frog", "stop", "crab"}, want: 2},
		{name: "consonant digraph", words: []string{"ship", "chin", "duck", "rhythm"}, want: 2},
		{name: "vowel digraph", words: []string{"BOY", "TOY", "JOY", "BOW", "COW", "MOW", "HAY"}, want: 3},
		{name: "magic e", words: []string{"cake", "hope", "eye"}, want: 3},
		{name: "plural", words: []string{"CATS", "DOGS", "HATS"}, want: 4},
		{name: "plural heuristic also matches singular s words", words: []string{"bus", "gas"}, want: 4},
		{name: "two letter s word is not plural", words: []string{"us"}, want: 1},
		{name: "long word", words: []string{"elephant"}, want: 5},
		{name: "accented letters count once", words: []string{"garçon", "piñata"}, want: 1},
		{name: "multi word", words: []string{"ice cream", "t-rex"}, want: 5},
		{name: "blend with complex vowel", words: []string{"tree", "snow"}, want: 5},
		{name: "empty", words: []string{""}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, w := range tt.words {
				assert.Equal(t, tt.want, Complexity(w), "Complexity(%q)", w)
			}
		})
	}
}

func TestComplexityIgnoresCase(t *testing.T) {
	for _, w := range []string{"cat", "frog", "boy", "cats", "elephant"} {
		assert.Equal(t, Complexity(w), Complexity(strings.ToUpper(w)), w)
		assert.Equal(t, SoundType(w), SoundType(strings.ToUpper(w)), w)
	}
}

func TestSoundType(t *testing.T) {
	tests := []struct {
		word       string
		consonant1 string
		vowel      string
		consonant2 string
		pattern    string
		silent     bool
		factors    []string
	}{
		{"CAT", SoundSimple, SoundShort, SoundSimple, "CVC", false, []string{}},
		{"BED", SoundSimple, SoundShort, SoundSimple, "CVC", false, []string{}},
		{"BOY", SoundSimple, SoundShort, SoundSimple, "CVC", false, []string{FactorComplexVowel}},
		{"HAY", SoundSimple, SoundShort, SoundSimple, "CVC", false, []string{FactorComplexVowel}},
		{"frog", SoundBlend, SoundShort, SoundSimple, "CCVC", false, []string{FactorConsonantBlend}},
		{"ship", SoundDigraph, SoundShort, SoundSimple, "CVCC", false, []string{FactorConsonantDigraph}},
		{"lamp", SoundSimple, SoundShort, SoundBlend, "CVCC", false, []string{}},
		{"duck", SoundSimple, SoundShort, SoundDigraph, "CVCC", false, []string{FactorConsonantDigraph}},
		{"cake", SoundSimple, SoundShort, SoundSimple, "CVCe", true, []string{FactorComplexVowel, FactorSilentLetters}},
		{"CATS", SoundSimple, SoundShort, SoundSimple, "CVCC", false, []string{FactorPluralForm}},
		{"rhythm", SoundSimple, SoundShort, SoundNone, "CVC", false, []string{FactorConsonantDigraph, FactorLongWord}},
		{"egg", SoundNone, SoundShort, SoundSimple, "CVC", false, []string{}},
		{"çat", SoundSimple, SoundShort, SoundSimple, "CVC", false, []string{}},
		{"façon", SoundSimple, SoundShort, SoundSimple, "CVVC", false, []string{}},
		{"garçon", SoundSimple, SoundShort, SoundSimple, "CVVC", false, []string{FactorLongWord}},
		{"", SoundNone, SoundShort, SoundNone, "CVC", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := SoundType(tt.word)
			assert.Equal(t, tt.consonant1, got.Consonant1, "consonant1")
			assert.Equal(t, tt.vowel, got.Vowel, "vowel")
			assert.Equal(t, tt.consonant2, got.Consonant2, "consonant2")
			assert.Equal(t, tt.pattern, got.Pattern, "pattern")
			assert.Equal(t, tt.silent, got.HasSilentLetters, "hasSilentLetters")
			assert.Equal(t, tt.factors, got.ComplexityFactors, "complexityFactors")
		})
	}
}

func TestSemanticTags(t *testing.T) {
	tests := []struct {
		word string
		want []string
	}{
		{"CAT", []string{"animal"}},
		{"bug", []string{"animal", "nature"}},
		{"Jam", []string{"food"}},
		{"snow", []string{"nature"}},
		{"zzz", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, SemanticTags(tt.word))
		})
	}
}

func TestLevelAvailability(t *testing.T) {
	tests := []struct {
		complexity int
		want       []int
	}{
		{1, []int{1, 2, 3, 4, 5}},
		{2, []int{2, 3, 4, 5}},
		{3, []int{3, 4, 5}},
		{4, []int{4, 5}},
		{5, []int{5}},
		{0, []int{1, 2, 3, 4, 5}},
		{6, []int{1, 2, 3, 4, 5}},
		{-1, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelAvailability(tt.complexity), "LevelAvailability(%d)", tt.complexity)
	}
}

func TestLevelAvailabilityMatchesComplexity(t *testing.T) {
	for _, w := range []string{"cat", "frog", "boy", "cats", "elephant"} {
		c := Complexity(w)
		levels := LevelAvailability(c)
		assert.Equal(t, c, levels[0], "%s should first appear at its own complexity", w)
		assert.Equal(t, 5, levels[len(levels)-1], w)
	}
}
