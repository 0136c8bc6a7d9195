package models

import (
	"encoding/json"
	"slices"
)

// Complexity bounds shared by the classifier, loader and generator.
const (
	MinLevel = 1
	MaxLevel = 5
)

// AllLevels is the availability assumed when a catalog record omits it.
var AllLevels = []int{1, 2, 3, 4, 5}

// SoundTypeClassification breaks a word into phonetic categories used
// when matching distractors.
type SoundTypeClassification struct {
	Consonant1        string   `json:"consonant1"`
	Vowel             string   `json:"vowel"`
	Consonant2        string   `json:"consonant2"`
	Pattern           string   `json:"pattern"`
	HasSilentLetters  bool     `json:"hasSilentLetters"`
	ComplexityFactors []string `json:"complexityFactors"`
}

// DefaultSoundType returns the classification of a plain CVC word.
func DefaultSoundType() SoundTypeClassification {
	return SoundTypeClassification{
		Consonant1:        "simple",
		Vowel:             "short",
		Consonant2:        "simple",
		Pattern:           "CVC",
		ComplexityFactors: []string{},
	}
}

// WordDefinition is one catalog entry. Entries are read-only once loaded.
type WordDefinition struct {
	TargetWord        string                  `json:"targetWord"`
	ImageResName      string                  `json:"imageResName"`
	Part1Sound        string                  `json:"part1Sound"`
	Part2Sound        string                  `json:"part2Sound"`
	Part3Sound        string                  `json:"part3Sound"`
	PhonicComplexity  int                     `json:"phonicComplexity"`
	SoundType         SoundTypeClassification `json:"soundType"`
	LevelAvailability []int                   `json:"levelAvailability"`
	Tags              []string                `json:"tags"`
}

// UnmarshalJSON applies the catalog defaults for fields a record leaves out.
func (w *WordDefinition) UnmarshalJSON(data []byte) error {
	type wordAlias WordDefinition
	aux := wordAlias{
		PhonicComplexity:  1,
		SoundType:         DefaultSoundType(),
		LevelAvailability: slices.Clone(AllLevels),
		Tags:              []string{},
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*w = WordDefinition(aux)
	return nil
}

// Parts returns the onset, nucleus and coda in position order.
func (w WordDefinition) Parts() [3]string {
	return [3]string{w.Part1Sound, w.Part2Sound, w.Part3Sound}
}

// AvailableAt reports whether the word may appear at the given level.
func (w WordDefinition) AvailableAt(level int) bool {
	return slices.Contains(w.LevelAvailability, level)
}
