// Package challenge builds picture-choice rounds from the word catalog.
package challenge

import (
	"log"
	"strings"

	"github.com/samber/lo"

	"tinywords/internal/models"
)

// ImageResolver maps an image handle to a servable reference.
type ImageResolver interface {
	Resolve(handle string) (ref string, ok bool)
}

type noImages struct{}

func (noImages) Resolve(string) (string, bool) { return "", false }

// Generator picks target words and phonetically close distractors. It never
// mutates the catalog and may be shared between goroutines.
type Generator struct {
	words    []models.WordDefinition
	resolver ImageResolver
	picker   Picker
}

// NewGenerator creates a generator over a validated catalog. A nil resolver
// reports every image as missing; a nil picker keeps input order.
func NewGenerator(words []models.WordDefinition, resolver ImageResolver, picker Picker) *Generator {
	if resolver == nil {
		resolver = noImages{}
	}
	if picker == nil {
		picker = FixedOrder{}
	}
	return &Generator{
		words:    words,
		resolver: resolver,
		picker:   picker,
	}
}

// Words returns the catalog the generator was built with.
func (g *Generator) Words() []models.WordDefinition {
	return g.words
}

// Lookup finds a catalog entry ignoring case.
func (g *Generator) Lookup(word string) (models.WordDefinition, bool) {
	return lo.Find(g.words, func(w models.WordDefinition) bool {
		return strings.EqualFold(w.TargetWord, word)
	})
}

// Generate builds a challenge for word. Distractors come from the first
// sound position with at least two single-segment matches; otherwise any
// two other words are used.
func (g *Generator) Generate(word string) (*models.Challenge, error) {
	if len(g.words) == 0 {
		return nil, ErrEmptyCatalog
	}
	target, ok := g.Lookup(word)
	if !ok {
		return nil, ErrWordNotFound
	}

	others := g.without(target, g.words)
	distractors := g.positionSearch(target, others)
	if len(distractors) < 2 {
		distractors = g.takeTwo(others)
		if len(distractors) < 2 {
			return nil, ErrInsufficientDistractors
		}
	}

	return g.assemble(target, distractors[0], distractors[1]), nil
}

// RandomInitial picks a target not in exclude and builds its challenge. When
// every word is excluded the exclusion is ignored.
func (g *Generator) RandomInitial(exclude []string) (*models.Challenge, error) {
	if len(g.words) == 0 {
		return nil, ErrEmptyCatalog
	}
	pool := lo.Filter(g.words, func(w models.WordDefinition, _ int) bool {
		return !lo.Contains(exclude, w.TargetWord)
	})
	if len(pool) == 0 {
		pool = g.words
	}
	target, _ := PickOne(g.picker, pool)
	return g.Generate(target.TargetWord)
}

// NextWordTarget returns the catalog word after previous, wrapping at the
// end. An unknown previous word restarts from the first entry.
func (g *Generator) NextWordTarget(previous string) (string, error) {
	if len(g.words) == 0 {
		return "", ErrEmptyCatalog
	}
	_, idx, ok := lo.FindIndexOf(g.words, func(w models.WordDefinition) bool {
		return strings.EqualFold(w.TargetWord, previous)
	})
	if !ok {
		return g.words[0].TargetWord, nil
	}
	return g.words[(idx+1)%len(g.words)].TargetWord, nil
}

// positionSearch scans sound positions in picker order and returns two
// candidates that differ from target only at that position, or nil.
func (g *Generator) positionSearch(target models.WordDefinition, pool []models.WordDefinition) []models.WordDefinition {
	for _, idx := range g.picker.Perm(3) {
		matches := lo.Filter(pool, func(w models.WordDefinition, _ int) bool {
			return differsOnlyAt(target, w, idx)
		})
		if picked := g.takeTwo(matches); len(picked) == 2 {
			return picked
		}
	}
	return nil
}

// takeTwo orders pool with the picker, drops repeated target words and
// returns the first two. Fewer are returned when the pool is too small.
func (g *Generator) takeTwo(pool []models.WordDefinition) []models.WordDefinition {
	distinct := lo.UniqBy(ordered(g.picker, pool), func(w models.WordDefinition) string {
		return w.TargetWord
	})
	if len(distinct) > 2 {
		distinct = distinct[:2]
	}
	return distinct
}

func (g *Generator) without(target models.WordDefinition, pool []models.WordDefinition) []models.WordDefinition {
	return lo.Filter(pool, func(w models.WordDefinition, _ int) bool {
		return w.TargetWord != target.TargetWord
	})
}

// assemble resolves images and orders the three choices. Missing images are
// logged and left for the caller to handle.
func (g *Generator) assemble(target, first, second models.WordDefinition) *models.Challenge {
	c := &models.Challenge{
		TargetWord: target.TargetWord,
		Correct:    g.choice(target),
		Incorrect:  [2]models.Choice{g.choice(first), g.choice(second)},
	}

	missing := lo.FilterMap([]models.Choice{c.Correct, c.Incorrect[0], c.Incorrect[1]}, func(ch models.Choice, _ int) (string, bool) {
		return ch.Word, !ch.ImageFound
	})
	if len(missing) > 0 {
		log.Printf("Warning: challenge %s has no image for %s", target.TargetWord, strings.Join(missing, ", "))
	}

	copy(c.Order[:], g.picker.Perm(3))
	return c
}

func (g *Generator) choice(w models.WordDefinition) models.Choice {
	ref, ok := g.resolver.Resolve(w.ImageResName)
	return models.Choice{Word: w.TargetWord, Image: ref, ImageFound: ok}
}

// differsOnlyAt reports whether candidate changes the sound at idx and keeps
// the other two.
func differsOnlyAt(target, candidate models.WordDefinition, idx int) bool {
	tp, cp := target.Parts(), candidate.Parts()
	for i := range tp {
		if (i == idx) == (tp[i] == cp[i]) {
			return false
		}
	}
	return true
}
