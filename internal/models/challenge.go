package models

// Choice is one picture the player can tap.
type Choice struct {
	Word       string `json:"word"`
	Image      string `json:"image,omitempty"`
	ImageFound bool   `json:"imageFound"`
}

// Challenge is a single round: the target word, the matching picture and
// two distractor pictures. Order holds the slot shown at each screen
// position, where slot 0 is the correct choice and slots 1 and 2 are the
// distractors.
type Challenge struct {
	TargetWord string    `json:"targetWord"`
	Correct    Choice    `json:"correct"`
	Incorrect  [2]Choice `json:"incorrect"`
	Order      [3]int    `json:"order"`
}

// Slot returns the choice stored in the given slot.
func (c Challenge) Slot(i int) Choice {
	if i == 0 {
		return c.Correct
	}
	return c.Incorrect[i-1]
}

// Choices returns the three choices in presentation order.
func (c Challenge) Choices() []Choice {
	out := make([]Choice, 0, len(c.Order))
	for _, slot := range c.Order {
		out = append(out, c.Slot(slot))
	}
	return out
}

// Words returns the correct word followed by both distractor words.
func (c Challenge) Words() []string {
	return []string{c.Correct.Word, c.Incorrect[0].Word, c.Incorrect[1].Word}
}

// IsCorrect reports whether word is the matching choice.
func (c Challenge) IsCorrect(word string) bool {
	return word == c.Correct.Word
}

// HasChoice reports whether word is one of the three choices.
func (c Challenge) HasChoice(word string) bool {
	for _, w := range c.Words() {
		if w == word {
			return true
		}
	}
	return false
}
