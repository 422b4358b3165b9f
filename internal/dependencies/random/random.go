package random

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"

	"github.com/google/uuid"
)

// Random provides random values and identifiers that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Float64 returns a random float in [0, 1)
	Float64() float64

	// NewID returns a new universally unique opaque identifier
	NewID() string
}

// CryptoRandom implements Random using crypto/rand and UUIDv4 identifiers
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fall back to 0 on error (should never happen with crypto/rand)
		return 0
	}
	return int(result.Int64())
}

// Float64 returns a cryptographically random float in [0, 1)
func (r *CryptoRandom) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// 53 random bits scaled into [0, 1)
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// NewID returns a random UUIDv4 string
func (r *CryptoRandom) NewID() string {
	return uuid.NewString()
}
