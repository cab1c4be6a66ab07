package content

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies the uniform draws that evaluation consumes.
// Evaluation never fails and never performs I/O; all randomness flows
// through this interface so callers control determinism.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// cryptoRNG draws 8 bytes of OS entropy per call. Yields are
// player-facing, so the default source is not predictable.
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// entropy exhausted; a weaker draw beats a dead server
		return rand.Float64()
	}
	// top 53 bits, the float64 mantissa width, keep the result in [0, 1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultRNG is what the server hands to evaluation when the caller
// didn't pin a seed.
func DefaultRNG() RandomSource { return cryptoRNG{} }

type seededRNG struct{ r *rand.Rand }

// NewSeededRNG builds a PCG source for tests and replayable
// evaluations; the same seed replays the same draw sequence.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
