package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/samber/lo"

	"tinywords/internal/challenge"
)

const (
	defaultPositivePhrase      = "Correct!"
	defaultEncouragementPhrase = "Try again!"
)

// SpokenContent holds the phrases read aloud after a choice
type SpokenContent struct {
	Positive      []string `json:"positive"`
	Encouragement []string `json:"encouragement"`
}

// LoadSpokenContent reads phrases from path. A missing file is not an
// error; the game falls back to the default phrases.
func LoadSpokenContent(path string) (SpokenContent, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: spoken content %s not found, using default phrases", path)
		return SpokenContent{}, nil
	}
	if err != nil {
		return SpokenContent{}, fmt.Errorf("failed to read spoken content: %w", err)
	}

	var content SpokenContent
	if err := json.Unmarshal(data, &content); err != nil {
		return SpokenContent{}, fmt.Errorf("failed to parse spoken content: %w", err)
	}
	content.Positive = nonBlank(content.Positive)
	content.Encouragement = nonBlank(content.Encouragement)
	return content, nil
}

// PositivePhrase picks a phrase for a correct answer
func (c SpokenContent) PositivePhrase(p challenge.Picker) string {
	if phrase, ok := challenge.PickOne(p, c.Positive); ok {
		return phrase
	}
	return defaultPositivePhrase
}

// EncouragementPhrase picks a phrase for a wrong answer
func (c SpokenContent) EncouragementPhrase(p challenge.Picker) string {
	if phrase, ok := challenge.PickOne(p, c.Encouragement); ok {
		return phrase
	}
	return defaultEncouragementPhrase
}

// Phrases returns every phrase the game can speak, including the defaults
func (c SpokenContent) Phrases() []string {
	return lo.Uniq(append(append([]string{defaultPositivePhrase, defaultEncouragementPhrase}, c.Positive...), c.Encouragement...))
}

func nonBlank(phrases []string) []string {
	return lo.Filter(phrases, func(p string, _ int) bool {
		return strings.TrimSpace(p) != ""
	})
}
