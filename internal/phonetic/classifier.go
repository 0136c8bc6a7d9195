// Package phonetic classifies words by phonetic complexity for the
// early-reading levels. Every function is pure and accepts any string.
package phonetic

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"tinywords/internal/models"
)

// Sound categories reported by SoundType.
const (
	SoundSimple  = "simple"
	SoundBlend   = "blend"
	SoundDigraph = "digraph"
	SoundNone    = "none"
	SoundShort   = "short"
)

// Complexity factors, listed in the order SoundType reports them.
const (
	FactorConsonantBlend   = "consonant_blend"
	FactorConsonantDigraph = "consonant_digraph"
	FactorComplexVowel     = "complex_vowel"
	FactorSilentLetters    = "silent_letters"
	FactorPluralForm       = "plural_form"
	FactorLongWord         = "long_word"
)

// Complexity rates a word from 1 (plain CVC) to 5 (multi-word or long).
// Tiers are checked independently and the highest one reached wins.
func Complexity(word string) int {
	w := strings.ToLower(word)
	complexity := 1

	if hasConsonantBlend(w) || hasConsonantDigraph(w) {
		complexity = 2
	}
	if hasComplexVowel(w) || hasSilentLetters(w) {
		complexity = 3
	}
	if isPlural(w) {
		complexity = 4
	}
	if strings.ContainsAny(word, " -") || letters(w) > 6 || (hasConsonantBlend(w) && hasComplexVowel(w)) {
		complexity = 5
	}

	return complexity
}

// SoundType splits the word at its first short vowel and classifies each
// part, the overall pattern and the factors that raise its complexity.
func SoundType(word string) models.SoundTypeClassification {
	w := strings.ToLower(word)
	initial, vowel, final := splitParts(w)

	return models.SoundTypeClassification{
		Consonant1:        classifyInitial(initial),
		Vowel:             classifyVowel(vowel),
		Consonant2:        classifyFinal(final),
		Pattern:           pattern(w),
		HasSilentLetters:  hasSilentLetters(w),
		ComplexityFactors: complexityFactors(w),
	}
}

// SemanticTags returns the curated categories the word belongs to.
func SemanticTags(word string) []string {
	w := strings.ToLower(word)
	tags := []string{}
	for _, category := range semanticCategories {
		if slices.Contains(category.words, w) {
			tags = append(tags, category.tag)
		}
	}
	return tags
}

// LevelAvailability returns the levels a word of the given complexity may
// appear at. Out-of-range complexities are available everywhere.
func LevelAvailability(complexity int) []int {
	if complexity < models.MinLevel || complexity > models.MaxLevel {
		return slices.Clone(models.AllLevels)
	}
	return lo.RangeFrom(complexity, models.MaxLevel-complexity+1)
}

func hasConsonantBlend(w string) bool {
	return containsAnyOf(w, consonantBlends)
}

func hasConsonantDigraph(w string) bool {
	return containsAnyOf(w, consonantDigraphs)
}

// hasComplexVowel also treats any word that ends in "e" and contains a
// magic-e vowel as complex, so "bed" is not complex but "hope" is.
func hasComplexVowel(w string) bool {
	if containsAnyOf(w, vowelDigraphs) {
		return true
	}
	return lo.ContainsBy(longVowelPatterns, func(p string) bool {
		return strings.ContainsRune(w, rune(p[0])) && strings.HasSuffix(w, "e")
	})
}

func hasSilentLetters(w string) bool {
	return strings.HasSuffix(w, "e") && letters(w) > 3
}

// isPlural is a suffix heuristic; words like "bus" and "gas" match too.
func isPlural(w string) bool {
	return strings.HasSuffix(w, "s") && letters(w) > 2
}

// letters counts runes so accented letters count once.
func letters(w string) int {
	return utf8.RuneCountInString(w)
}

func containsAnyOf(w string, table []string) bool {
	return lo.ContainsBy(table, func(s string) bool {
		return strings.Contains(w, s)
	})
}

// splitParts cuts w around its first short vowel. A word without one is
// returned whole as the initial part.
func splitParts(w string) (initial, vowel, final string) {
	idx := strings.IndexFunc(w, func(r rune) bool {
		return slices.Contains(shortVowels, r)
	})
	if idx < 0 {
		return w, "", ""
	}
	return w[:idx], w[idx : idx+1], w[idx+1:]
}

func classifyInitial(c string) string {
	return classifyConsonant(c, consonantBlends)
}

func classifyFinal(c string) string {
	return classifyConsonant(c, finalBlends)
}

func classifyConsonant(c string, blends []string) string {
	switch {
	case len(c) >= 2 && slices.Contains(blends, c):
		return SoundBlend
	case len(c) >= 2 && slices.Contains(consonantDigraphs, c):
		return SoundDigraph
	case c == "":
		return SoundNone
	default:
		return SoundSimple
	}
}

func classifyVowel(v string) string {
	if len(v) >= 2 && slices.Contains(vowelDigraphs, v) {
		return SoundDigraph
	}
	return SoundShort
}

func pattern(w string) string {
	runes := []rune(w)
	vowels := lo.CountBy(runes, func(r rune) bool {
		return slices.Contains(shortVowels, r)
	})

	switch {
	case len(runes) == 3 && vowels == 1:
		return "CVC"
	case len(runes) == 4 && vowels == 1:
		if hasConsonantBlend(w) {
			return "CCVC"
		}
		return "CVCC"
	case strings.HasSuffix(w, "e") && vowels >= 2:
		return "CVCe"
	case vowels >= 2:
		return "CVVC"
	default:
		return "CVC"
	}
}

func complexityFactors(w string) []string {
	factors := []string{}
	if hasConsonantBlend(w) {
		factors = append(factors, FactorConsonantBlend)
	}
	if hasConsonantDigraph(w) {
		factors = append(factors, FactorConsonantDigraph)
	}
	if hasComplexVowel(w) {
		factors = append(factors, FactorComplexVowel)
	}
	if hasSilentLetters(w) {
		factors = append(factors, FactorSilentLetters)
	}
	if isPlural(w) {
		factors = append(factors, FactorPluralForm)
	}
	if letters(w) > 5 {
		factors = append(factors, FactorLongWord)
	}
	return factors
}
