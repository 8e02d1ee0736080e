package shuffle

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand/v2"
)

// SeedSize is the length of a shuffler seed in bytes.
const SeedSize = 32

// Seed is the ChaCha8 key a Shuffler is built from.
type Seed [SeedSize]byte

// DemoSeed is the all-zero seed. Boards built from it are the same on every run.
var DemoSeed Seed

// SeedSource produces the seed for a new Shuffler.
type SeedSource func() (Seed, error)

// Fixed returns a SeedSource that always yields seed.
func Fixed(seed Seed) SeedSource {
	return func() (Seed, error) {
		return seed, nil
	}
}

// Entropy reads a fresh seed from the operating system.
func Entropy() (Seed, error) {
	var s Seed
	if _, err := rand.Read(s[:]); err != nil {
		return s, fmt.Errorf("could not read seed entropy: %w", err)
	}
	return s, nil
}

// ParseSeed decodes a 64 character hex string.
func ParseSeed(text string) (Seed, error) {
	var s Seed
	raw, err := hex.DecodeString(text)
	if err != nil {
		return s, fmt.Errorf("invalid seed %q: %w", text, err)
	}
	if len(raw) != SeedSize {
		return s, fmt.Errorf("invalid seed %q: want %d bytes, got %d", text, SeedSize, len(raw))
	}
	copy(s[:], raw)
	return s, nil
}

func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

// Shuffler permutes sequences with a seeded ChaCha8 stream. Successive calls
// continue the same stream, so a sequence of shuffles is reproducible as a whole.
type Shuffler struct {
	rng *mrand.Rand
}

// New returns a Shuffler keyed with seed.
func New(seed Seed) *Shuffler {
	return &Shuffler{rng: mrand.New(mrand.NewChaCha8(seed))}
}

// FromSource builds a Shuffler from whatever seed src yields.
func FromSource(src SeedSource) (*Shuffler, error) {
	seed, err := src()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

// Shuffle runs Fisher-Yates forward over n elements: at step i it swaps i with
// a uniformly drawn j in [i, n-1]. The last step draws too, keeping the stream
// position a function of n alone.
func (s *Shuffler) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(n-i)
		swap(i, j)
	}
}

// Permutation returns a shuffled copy of 0..n-1.
func (s *Shuffler) Permutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	s.Shuffle(n, func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})
	return p
}
