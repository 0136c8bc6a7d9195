package challenge

import "errors"

// Generation failures. Each one means no challenge can be shown for the
// request; callers decide whether to retry with another word.
var (
	ErrEmptyCatalog            = errors.New("word catalog is empty")
	ErrWordNotFound            = errors.New("word not found in catalog")
	ErrInsufficientDistractors = errors.New("not enough distractor words")
	ErrLevelMismatch           = errors.New("word is not available at this level")
	ErrLevelInconsistent       = errors.New("challenge mixes words from other levels")
	ErrNoWordsForLevel         = errors.New("no words at this level")
)
