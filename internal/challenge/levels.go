package challenge

import (
	"github.com/samber/lo"

	"tinywords/internal/models"
)

// complexityCeiling is the highest phonic complexity a distractor may have
// at each level.
var complexityCeiling = map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5}

// GenerateForLevel builds a challenge whose three words are all playable at
// level.
func (g *Generator) GenerateForLevel(word string, level int) (*models.Challenge, error) {
	if len(g.words) == 0 {
		return nil, ErrEmptyCatalog
	}
	if level < models.MinLevel || level > models.MaxLevel {
		return nil, ErrLevelMismatch
	}
	target, ok := g.Lookup(word)
	if !ok {
		return nil, ErrWordNotFound
	}
	if !target.AvailableAt(level) {
		return nil, ErrLevelMismatch
	}

	distractors := g.LevelDistractors(target, level)
	if len(distractors) < 2 {
		return nil, ErrInsufficientDistractors
	}

	c := g.assemble(target, distractors[0], distractors[1])
	if !g.ValidateForLevel(c, level) {
		return nil, ErrLevelInconsistent
	}
	return c, nil
}

// RandomForLevel picks a target whose complexity equals level and is not in
// exclude, then builds a level challenge for it.
func (g *Generator) RandomForLevel(level int, exclude []string) (*models.Challenge, error) {
	if len(g.words) == 0 {
		return nil, ErrEmptyCatalog
	}
	pool := lo.Filter(g.words, func(w models.WordDefinition, _ int) bool {
		return w.PhonicComplexity == level && !lo.Contains(exclude, w.TargetWord)
	})
	target, ok := PickOne(g.picker, pool)
	if !ok {
		return nil, ErrNoWordsForLevel
	}
	return g.GenerateForLevel(target.TargetWord, level)
}

// LevelDistractors selects up to two distractors for target at level.
// Levels 1 and 2 prefer single-position sound changes; levels 3 to 5 only
// filter by level. Unknown levels are treated as level 1.
func (g *Generator) LevelDistractors(target models.WordDefinition, level int) []models.WordDefinition {
	switch level {
	case 2:
		return g.levelTwoDistractors(target)
	case 3, 4, 5:
		return g.takeTwo(g.levelCandidates(target, level))
	default:
		return g.levelOneDistractors(target)
	}
}

func (g *Generator) levelOneDistractors(target models.WordDefinition) []models.WordDefinition {
	candidates := lo.Filter(g.levelCandidates(target, 1), func(w models.WordDefinition, _ int) bool {
		return isLevelOneCandidate(w)
	})
	if picked := g.positionSearch(target, candidates); len(picked) == 2 {
		return picked
	}
	return g.takeTwo(candidates)
}

func isLevelOneCandidate(w models.WordDefinition) bool {
	return w.PhonicComplexity == 1 && w.SoundType.Pattern == "CVC"
}

// levelTwoDistractors accepts whole consonant-cluster swaps, so "ship" and
// "chip" count as a position-0 change.
func (g *Generator) levelTwoDistractors(target models.WordDefinition) []models.WordDefinition {
	candidates := g.levelCandidates(target, 2)
	if picked := g.positionSearch(target, candidates); len(picked) == 2 {
		return picked
	}

	sameComplexity := lo.Filter(candidates, func(w models.WordDefinition, _ int) bool {
		return w.PhonicComplexity == target.PhonicComplexity
	})
	if len(sameComplexity) >= 2 {
		return g.takeTwo(sameComplexity)
	}
	return g.takeTwo(candidates)
}

// levelCandidates returns every other word available at level and within
// the level's complexity ceiling.
func (g *Generator) levelCandidates(target models.WordDefinition, level int) []models.WordDefinition {
	ceiling := complexityCeiling[level]
	return lo.Filter(g.without(target, g.words), func(w models.WordDefinition, _ int) bool {
		return w.AvailableAt(level) && w.PhonicComplexity <= ceiling
	})
}

// ValidateForLevel reports whether all three words of c exist in the catalog
// and are available at level.
func (g *Generator) ValidateForLevel(c *models.Challenge, level int) bool {
	if c == nil {
		return false
	}
	for _, word := range c.Words() {
		def, ok := lo.Find(g.words, func(w models.WordDefinition) bool {
			return w.TargetWord == word
		})
		if !ok || !def.AvailableAt(level) {
			return false
		}
	}
	return true
}

// DistractorGaps lists the words at level for which no sound position has
// two single-segment matches among the distractors the generator would
// consider at that level. Catalog maintainers use it to spot words that
// always fall back.
func (g *Generator) DistractorGaps(level int) []string {
	targets := lo.Filter(g.words, func(w models.WordDefinition, _ int) bool {
		if level == 1 {
			return w.AvailableAt(1) && w.PhonicComplexity == 1
		}
		return w.AvailableAt(level) && w.PhonicComplexity <= complexityCeiling[level]
	})

	var gaps []string
	for _, target := range targets {
		others := g.levelCandidates(target, level)
		if level == 1 {
			others = lo.Filter(others, func(w models.WordDefinition, _ int) bool {
				return isLevelOneCandidate(w)
			})
		}
		covered := lo.SomeBy([]int{0, 1, 2}, func(idx int) bool {
			return lo.CountBy(others, func(w models.WordDefinition) bool {
				return differsOnlyAt(target, w, idx)
			}) >= 2
		})
		if !covered {
			gaps = append(gaps, target.TargetWord)
		}
	}
	return gaps
}
