package challenge

import (
	"math/rand/v2"
	"sync"

	"github.com/samber/lo"
)

// Picker supplies every ordering decision the generator makes. FixedOrder
// gives reproducible output; RandomPicker gives play order.
type Picker interface {
	// Perm returns a permutation of [0, n).
	Perm(n int) []int
	// Intn returns an index in [0, n). n is always positive.
	Intn(n int) int
}

// FixedOrder keeps input order and always picks the first element.
type FixedOrder struct{}

func (FixedOrder) Perm(n int) []int { return lo.Range(n) }

func (FixedOrder) Intn(int) int { return 0 }

// RandomPicker draws from a PCG source. It is safe for concurrent use.
type RandomPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPicker creates a picker with a fixed seed, useful for replaying
// a sequence of rounds.
func NewRandomPicker(seed uint64) *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewPicker creates a randomly seeded picker.
func NewPicker() *RandomPicker {
	return NewRandomPicker(rand.Uint64())
}

func (p *RandomPicker) Perm(n int) []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Perm(n)
}

func (p *RandomPicker) Intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// ordered returns items rearranged by the picker's permutation.
func ordered[T any](p Picker, items []T) []T {
	out := make([]T, len(items))
	for i, j := range p.Perm(len(items)) {
		out[i] = items[j]
	}
	return out
}

// PickOne returns a random element, or false when items is empty.
func PickOne[T any](p Picker, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[p.Intn(len(items))], true
}
