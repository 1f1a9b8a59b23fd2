package rng

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
)

// pcgStream is the fixed PCG increment; only the seed varies between streams.
const pcgStream = 0x9e3779b97f4a7c15

// Seed identifies a randomizer playthrough. Displayed as "XXXX-XXXX".
type Seed uint32

// String formats the seed as two dash-separated groups of upper-case hex.
func (s Seed) String() string {
	return fmt.Sprintf("%04X-%04X", uint32(s)>>16, uint32(s)&0xFFFF)
}

// ParseSeed accepts "ABCD-1234", "abcd1234" or "ABCD 1234".
func ParseSeed(text string) (Seed, error) {
	cleaned := strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(text))
	if len(cleaned) != 8 {
		return 0, customerrors.ErrInvalidSeed(text, fmt.Errorf("expected 8 hex digits, got %d", len(cleaned)))
	}
	v, err := strconv.ParseUint(cleaned, 16, 32)
	if err != nil {
		return 0, customerrors.ErrInvalidSeed(text, err)
	}
	return Seed(v), nil
}

// RandomSeed draws a fresh seed from the process-wide generator.
func RandomSeed() Seed {
	return Seed(rand.Uint32())
}

// Stream is a single persistent random stream for one seed. Every draw
// advances the cursor; the same seed always yields the same draw sequence.
// A Stream has one owner and is not safe for concurrent use.
type Stream struct {
	seed  Seed
	src   *rand.Rand
	draws uint64
}

// NewStream creates the stream for seed, positioned at its first draw.
func NewStream(seed Seed) *Stream {
	return &Stream{
		seed: seed,
		src:  rand.New(rand.NewPCG(uint64(seed), pcgStream)),
	}
}

// Seed returns the seed the stream was created from.
func (s *Stream) Seed() Seed {
	return s.seed
}

// Draws returns how many values have been drawn so far.
func (s *Stream) Draws() uint64 {
	return s.draws
}

// Intn returns a value in [0, n). n must be positive.
func (s *Stream) Intn(n int) int {
	s.draws++
	return s.src.IntN(n)
}

// Shuffle permutes xs in place (Fisher-Yates).
func Shuffle[T any](s *Stream, xs []T) {
	for i := len(xs) - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// Pick returns a uniformly chosen element. ok is false when xs is empty.
func Pick[T any](s *Stream, xs []T) (T, bool) {
	var zero T
	if len(xs) == 0 {
		return zero, false
	}
	return xs[s.Intn(len(xs))], true
}

// PickAndRemove returns a uniformly chosen element and xs without it. The
// remaining elements keep their relative order.
func PickAndRemove[T any](s *Stream, xs []T) (T, []T, bool) {
	var zero T
	if len(xs) == 0 {
		return zero, xs, false
	}
	i := s.Intn(len(xs))
	picked := xs[i]
	rest := make([]T, 0, len(xs)-1)
	rest = append(rest, xs[:i]...)
	rest = append(rest, xs[i+1:]...)
	return picked, rest, true
}
