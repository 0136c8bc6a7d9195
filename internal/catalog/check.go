package catalog

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"tinywords/internal/models"
	"tinywords/internal/phonetic"
)

// Check reports accepted words whose levels contradict their complexity or
// whose sound parts do not spell the word. Nothing is dropped.
func Check(words []models.WordDefinition) []Issue {
	var issues []Issue
	for i, w := range words {
		if reason := levelProblem(w); reason != "" {
			issues = append(issues, Issue{Index: i, Word: w.TargetWord, Reason: reason})
		}
		parts := len(w.Part1Sound) + len(w.Part2Sound) + len(w.Part3Sound)
		if parts != len(w.TargetWord) {
			issues = append(issues, Issue{
				Index:  i,
				Word:   w.TargetWord,
				Reason: fmt.Sprintf("sound parts cover %d of %d letters", parts, len(w.TargetWord)),
			})
		}
	}
	return issues
}

// levelProblem applies the rule that a word first appears at its own
// complexity and stays available above it.
func levelProblem(w models.WordDefinition) string {
	c := w.PhonicComplexity
	switch {
	case c == 1 && !w.AvailableAt(1):
		return "complexity 1 word must be available at level 1"
	case c >= 2 && c <= 4 && w.AvailableAt(c-1):
		return fmt.Sprintf("complexity %d word must not be available at level %d", c, c-1)
	case c >= 2 && c <= 4 && !w.AvailableAt(c):
		return fmt.Sprintf("complexity %d word must be available at level %d", c, c)
	case c == 5 && !slices.Equal(lo.Uniq(w.LevelAvailability), []int{5}):
		return "complexity 5 word must only be available at level 5"
	}
	return ""
}

// Annotate recomputes the phonetic fields of a word from its spelling.
// Hand-written tags are kept and the classifier's tags added after them.
func Annotate(w models.WordDefinition) models.WordDefinition {
	w.PhonicComplexity = phonetic.Complexity(w.TargetWord)
	w.SoundType = phonetic.SoundType(w.TargetWord)
	w.LevelAvailability = phonetic.LevelAvailability(w.PhonicComplexity)
	w.Tags = lo.Union(w.Tags, phonetic.SemanticTags(w.TargetWord))
	return w
}
