package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinywords/internal/models"
)

func levelCatalog() []models.WordDefinition {
	return []models.WordDefinition{
		cvc("CAT", "C", "A", "T"),
		cvc("BAT", "B", "A", "T"),
		cvc("HAT", "H", "A", "T"),
		cvc("MAT", "M", "A", "T"),
		cvc("SUN", "S", "U", "N"),
		def("LAMP", "L", "A", "MP", 1, "CVCC", 1, 2, 3, 4, 5),
		def("SHIP", "SH", "I", "P", 2, "CVCC", 2, 3, 4, 5),
		def("CHIP", "CH", "I", "P", 2, "CVCC", 2, 3, 4, 5),
		def("WHIP", "WH", "I", "P", 2, "CVCC", 2, 3, 4, 5),
		def("FROG", "FR", "O", "G", 2, "CCVC", 2, 3, 4, 5),
		def("BOY", "B", "O", "Y", 3, "CVC", 3, 4, 5),
		def("TOY", "T", "O", "Y", 3, "CVC", 3, 4, 5),
		def("JOY", "J", "O", "Y", 3, "CVC", 3, 4, 5),
		def("CATS", "C", "A", "TS", 4, "CVCC", 4, 5),
		def("DOGS", "D", "O", "GS", 4, "CVCC", 4, 5),
		def("ELEPHANT", "", "E", "LEPHANT", 5, "CVVC", 5),
		def("ICE CREAM", "", "I", "CE CREAM", 5, "CVCe", 5),
	}
}

func TestGenerateForLevel(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		level   int
		want    []string
		wantErr error
	}{
		{name: "level 1 single position", target: "CAT", level: 1, want: []string{"BAT", "HAT"}},
		{name: "level 1 fallback skips non CVC words", target: "SUN", level: 1, want: []string{"CAT", "BAT"}},
		{name: "level 2 cluster swap", target: "SHIP", level: 2, want: []string{"CHIP", "WHIP"}},
		{name: "level 2 same complexity fallback", target: "FROG", level: 2, want: []string{"SHIP", "CHIP"}},
		{name: "level 2 simple word", target: "CAT", level: 2, want: []string{"BAT", "HAT"}},
		{name: "level 3 takes first available", target: "BOY", level: 3, want: []string{"CAT", "BAT"}},
		{name: "level 4 takes first available", target: "CATS", level: 4, want: []string{"CAT", "BAT"}},
		{name: "level 5 takes first available", target: "ELEPHANT", level: 5, want: []string{"CAT", "BAT"}},
		{name: "word above level", target: "SHIP", level: 1, wantErr: ErrLevelMismatch},
		{name: "word below level", target: "ELEPHANT", level: 4, wantErr: ErrLevelMismatch},
		{name: "level zero", target: "CAT", level: 0, wantErr: ErrLevelMismatch},
		{name: "level six", target: "CAT", level: 6, wantErr: ErrLevelMismatch},
		{name: "unknown word", target: "PIG", level: 1, wantErr: ErrWordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(levelCatalog(), nil, FixedOrder{})
			c, err := g.GenerateForLevel(tt.target, tt.level)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, c.TargetWord)
			assert.Equal(t, tt.want, distractorWords(c))
			assert.True(t, g.ValidateForLevel(c, tt.level))
		})
	}
}

func TestGenerateForLevelEmptyCatalog(t *testing.T) {
	_, err := NewGenerator(nil, nil, FixedOrder{}).GenerateForLevel("CAT", 1)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestGenerateForLevelInsufficientDistractors(t *testing.T) {
	words := []models.WordDefinition{
		cvc("CAT", "C", "A", "T"),
		cvc("BAT", "B", "A", "T"),
		def("SHIP", "SH", "I", "P", 2, "CVCC", 2, 3, 4, 5),
	}
	g := NewGenerator(words, nil, FixedOrder{})

	_, err := g.GenerateForLevel("CAT", 1)
	assert.ErrorIs(t, err, ErrInsufficientDistractors)
}

func TestGenerateForLevelKeepsWordsInLevel(t *testing.T) {
	words := levelCatalog()
	for seed := uint64(1); seed <= 20; seed++ {
		g := NewGenerator(words, nil, NewRandomPicker(seed))
		for _, w := range words {
			for _, level := range w.LevelAvailability {
				c, err := g.GenerateForLevel(w.TargetWord, level)
				if err != nil {
					assert.ErrorIs(t, err, ErrInsufficientDistractors, "%s at level %d", w.TargetWord, level)
					continue
				}
				for _, word := range c.Words() {
					d, ok := g.Lookup(word)
					require.True(t, ok)
					assert.True(t, d.AvailableAt(level), "%s in a level %d challenge", word, level)
				}
				assert.NotContains(t, distractorWords(c), c.TargetWord)
				assert.NotEqual(t, c.Incorrect[0].Word, c.Incorrect[1].Word)
			}
		}
	}
}

func TestGenerateForLevelTwoFallsBackToAnyCandidate(t *testing.T) {
	words := []models.WordDefinition{
		def("SHIP", "SH", "I", "P", 2, "CVCC", 2, 3, 4, 5),
		cvc("CAT", "C", "A", "T"),
		cvc("SUN", "S", "U", "N"),
		def("FROG", "FR", "O", "G", 2, "CCVC", 2, 3, 4, 5),
	}
	g := NewGenerator(words, nil, FixedOrder{})

	c, err := g.GenerateForLevel("SHIP", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"CAT", "SUN"}, distractorWords(c))
	assert.True(t, g.ValidateForLevel(c, 2))
}

func TestLevelDistractorsUnknownLevelActsAsLevelOne(t *testing.T) {
	g := NewGenerator(levelCatalog(), nil, FixedOrder{})
	target, ok := g.Lookup("CAT")
	require.True(t, ok)

	assert.Equal(t, g.LevelDistractors(target, 1), g.LevelDistractors(target, 9))
}

func TestLevelOneDistractorsRequireCVC(t *testing.T) {
	g := NewGenerator(levelCatalog(), nil, FixedOrder{})
	target, ok := g.Lookup("MAT")
	require.True(t, ok)

	for _, d := range g.LevelDistractors(target, 1) {
		assert.Equal(t, "CVC", d.SoundType.Pattern)
		assert.Equal(t, 1, d.PhonicComplexity)
	}
}

func TestValidateForLevel(t *testing.T) {
	g := NewGenerator(levelCatalog(), nil, FixedOrder{})

	challengeOf := func(words ...string) *models.Challenge {
		return &models.Challenge{
			TargetWord: words[0],
			Correct:    models.Choice{Word: words[0]},
			Incorrect:  [2]models.Choice{{Word: words[1]}, {Word: words[2]}},
		}
	}

	tests := []struct {
		name      string
		challenge *models.Challenge
		level     int
		want      bool
	}{
		{name: "all available", challenge: challengeOf("CAT", "BAT", "HAT"), level: 1, want: true},
		{name: "distractor above level", challenge: challengeOf("CAT", "BAT", "SHIP"), level: 1, want: false},
		{name: "unknown word", challenge: challengeOf("CAT", "BAT", "PIG"), level: 1, want: false},
		{name: "lookup is exact", challenge: challengeOf("cat", "BAT", "HAT"), level: 1, want: false},
		{name: "nil challenge", challenge: nil, level: 1, want: false},
		{name: "level 5 words", challenge: challengeOf("ELEPHANT", "ICE CREAM", "CAT"), level: 5, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.ValidateForLevel(tt.challenge, tt.level))
		})
	}
}

func TestRandomForLevel(t *testing.T) {
	g := NewGenerator(levelCatalog(), nil, FixedOrder{})

	c, err := g.RandomForLevel(1, nil)
	require.NoError(t, err)
	assert.Equal(t, "CAT", c.TargetWord)

	c, err = g.RandomForLevel(2, []string{"SHIP"})
	require.NoError(t, err)
	assert.Equal(t, "CHIP", c.TargetWord)

	_, err = g.RandomForLevel(3, []string{"BOY", "TOY", "JOY"})
	assert.ErrorIs(t, err, ErrNoWordsForLevel)

	_, err = NewGenerator(nil, nil, FixedOrder{}).RandomForLevel(1, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestDistractorGaps(t *testing.T) {
	g := NewGenerator(levelCatalog(), nil, FixedOrder{})

	assert.Equal(t, []string{"SUN", "LAMP"}, g.DistractorGaps(1))
	assert.Contains(t, g.DistractorGaps(2), "FROG")
	assert.NotContains(t, g.DistractorGaps(2), "SHIP")
}

func TestDistractorGapsLevelOneIgnoresNonCVCCandidates(t *testing.T) {
	words := []models.WordDefinition{
		cvc("CAT", "C", "A", "T"),
		cvc("BAT", "B", "A", "T"),
		cvc("HAT", "H", "A", "T"),
		def("LAMP", "L", "A", "MP", 1, "CVCC", 1, 2, 3, 4, 5),
		def("DAMP", "D", "A", "MP", 1, "CVCC", 1, 2, 3, 4, 5),
		def("RAMP", "R", "A", "MP", 1, "CVCC", 1, 2, 3, 4, 5),
	}
	g := NewGenerator(words, nil, FixedOrder{})

	assert.Equal(t, []string{"LAMP", "DAMP", "RAMP"}, g.DistractorGaps(1))
	assert.Empty(t, g.DistractorGaps(2))
}
