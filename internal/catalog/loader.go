// Package catalog loads and maintains the JSON word catalog.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"tinywords/internal/models"
)

// Issue describes a catalog record that was rejected or looks wrong.
type Issue struct {
	Index  int
	Word   string
	Reason string
}

func (i Issue) String() string {
	if i.Word == "" {
		return fmt.Sprintf("record %d: %s", i.Index, i.Reason)
	}
	return fmt.Sprintf("record %d (%s): %s", i.Index, i.Word, i.Reason)
}

// Result holds the accepted words and every record dropped on the way.
type Result struct {
	Words   []models.WordDefinition
	Dropped []Issue
}

// Load reads a catalog file and returns the accepted words.
func Load(path string) ([]models.WordDefinition, error) {
	res, err := Read(path)
	if err != nil {
		return nil, err
	}
	return res.Words, nil
}

// Read reads a catalog file and reports dropped records.
func Read(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of word records. Records that fail to decode,
// fail validation or repeat an earlier target word are dropped with a
// warning; the rest are returned in file order.
func Parse(data []byte) (*Result, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	res := &Result{Words: make([]models.WordDefinition, 0, len(raw))}
	seen := make(map[string]bool, len(raw))

	for i, rec := range raw {
		var def models.WordDefinition
		if err := json.Unmarshal(rec, &def); err != nil {
			res.drop(Issue{Index: i, Reason: err.Error()})
			continue
		}
		if err := Validate(def); err != nil {
			res.drop(Issue{Index: i, Word: def.TargetWord, Reason: err.Error()})
			continue
		}
		key := strings.ToUpper(def.TargetWord)
		if seen[key] {
			res.drop(Issue{Index: i, Word: def.TargetWord, Reason: "duplicate target word"})
			continue
		}
		seen[key] = true
		res.Words = append(res.Words, def)
	}

	return res, nil
}

func (r *Result) drop(issue Issue) {
	log.Printf("Warning: skipping word definition %s", issue)
	r.Dropped = append(r.Dropped, issue)
}

// Validate checks the rules a record must pass to enter the catalog.
func Validate(def models.WordDefinition) error {
	if strings.TrimSpace(def.TargetWord) == "" {
		return errors.New("target word is blank")
	}
	if strings.TrimSpace(def.ImageResName) == "" {
		return errors.New("image name is blank")
	}
	if def.PhonicComplexity < models.MinLevel || def.PhonicComplexity > models.MaxLevel {
		return fmt.Errorf("phonic complexity %d out of range", def.PhonicComplexity)
	}
	if len(def.LevelAvailability) == 0 {
		return errors.New("level availability is empty")
	}
	for _, level := range def.LevelAvailability {
		if level < models.MinLevel || level > models.MaxLevel {
			return fmt.Errorf("level %d out of range", level)
		}
	}
	return nil
}

// Save writes words as an indented JSON array.
func Save(path string, words []models.WordDefinition) error {
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}
