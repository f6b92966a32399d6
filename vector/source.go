package vector

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/rand"

	"golang.org/x/crypto/chacha20"
)

//go:generate mockgen -source=source.go -destination=mock_source_test.go -package=vector

// Source supplies random words. Implementations are not safe for concurrent
// use: a generation call must own its Source until it returns, otherwise its
// words and bits stop matching each other.
type Source interface {
	// Next returns a uniformly distributed value in [0, 2^width).
	Next(width int) *big.Int
}

// Source kinds understood by NewSource.
const (
	SourceMath     = "math"
	SourceChaCha20 = "chacha20"
)

// NewSource builds a seeded Source of the given kind.
func NewSource(kind string, seed int64) (Source, error) {
	switch kind {
	case "", SourceMath:
		return NewSeededSource(seed), nil
	case SourceChaCha20:
		return NewChaChaSource(seed), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want %s|%s)", kind, SourceMath, SourceChaCha20)
	}
}

// RandSource draws words from a math/rand generator, 64 bits at a time with
// the most significant chunk drawn first.
type RandSource struct {
	rng *rand.Rand
}

func NewRandSource(rng *rand.Rand) *RandSource { return &RandSource{rng: rng} }

func NewSeededSource(seed int64) *RandSource {
	return NewRandSource(rand.New(rand.NewSource(seed)))
}

func (s *RandSource) Next(width int) *big.Int {
	w := new(big.Int)
	chunk := new(big.Int)
	for remaining := width; remaining > 0; remaining -= 64 {
		n := min(remaining, 64)
		v := s.rng.Uint64()
		if n < 64 {
			v &= 1<<uint(n) - 1
		}
		w.Lsh(w, uint(n))
		w.Or(w, chunk.SetUint64(v))
	}
	return w
}

// ChaChaSource draws words from a ChaCha20 keystream keyed by the seed. Unlike
// math/rand the sequence is fully specified, so other tools can reproduce it.
type ChaChaSource struct {
	c   *chacha20.Cipher
	buf []byte
}

func NewChaChaSource(seed int64) *ChaChaSource {
	var key [chacha20.KeySize]byte
	binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// key and nonce sizes are fixed above
		panic(err)
	}
	return &ChaChaSource{c: c}
}

// Next consumes ceil(width/8) keystream bytes, read big-endian, and masks off
// the excess high bits.
func (s *ChaChaSource) Next(width int) *big.Int {
	if width <= 0 {
		return new(big.Int)
	}
	n := (width + 7) / 8
	if cap(s.buf) < n {
		s.buf = make([]byte, n)
	}
	b := s.buf[:n]
	clear(b)
	s.c.XORKeyStream(b, b)
	if extra := n*8 - width; extra > 0 {
		b[0] &= 0xff >> uint(extra)
	}
	return new(big.Int).SetBytes(b)
}
