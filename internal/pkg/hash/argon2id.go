package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2idConfig tunes the Argon2id cost parameters.
// Zero values fall back to the defaults used by NewArgon2id.
type Argon2idConfig struct {
	// MemoryKiB is the memory cost in KiB.
	MemoryKiB uint32
	// Iterations is the time cost.
	Iterations uint32
	// Parallelism is the number of lanes.
	Parallelism uint8
	// MaxConcurrent bounds simultaneous hash computations; 0 disables the limit.
	MaxConcurrent int
	// Pepper is appended to every plaintext before hashing.
	Pepper string
}

// Argon2id implements the Hash interface using Argon2id.
type Argon2id struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
	pepper      string
	sema        chan struct{}
}

// NewArgon2id returns an Argon2id hasher with recommended defaults.
func NewArgon2id(pepper string) *Argon2id {
	return NewArgon2idWithConfig(Argon2idConfig{Pepper: pepper, MaxConcurrent: 2})
}

// NewArgon2idWithConfig returns an Argon2id hasher using cfg.
func NewArgon2idWithConfig(cfg Argon2idConfig) *Argon2id {
	a := &Argon2id{
		memory:      32 * 1024,
		iterations:  3,
		parallelism: 2,
		saltLength:  16,
		keyLength:   32,
		pepper:      cfg.Pepper,
	}
	if cfg.MemoryKiB > 0 {
		a.memory = cfg.MemoryKiB
	}
	if cfg.Iterations > 0 {
		a.iterations = cfg.Iterations
	}
	if cfg.Parallelism > 0 {
		a.parallelism = cfg.Parallelism
	}
	if cfg.MaxConcurrent > 0 {
		a.sema = make(chan struct{}, cfg.MaxConcurrent)
	}

	return a
}

// Hash takes a plaintext string and returns its PHC encoded hash.
func (a *Argon2id) Hash(str string) ([]byte, error) {
	salt := make([]byte, a.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := a.derive(str, salt, a.iterations, a.memory, a.parallelism, a.keyLength)

	return fmt.Appendf(nil,
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.memory,
		a.iterations,
		a.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks if the given plaintext string matches the encoded hash.
// Parameters are read from the hash itself so older hashes keep verifying
// after the configured cost changes.
func (a *Argon2id) Verify(hashed, str string) bool {
	if hashed == "" || str == "" {
		return false
	}

	parts := strings.Split(hashed, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	computed := a.derive(str, salt, iterations, memory, parallelism, uint32(len(expected)))

	return subtle.ConstantTimeCompare(expected, computed) == 1
}

func (a *Argon2id) derive(str string, salt []byte, t, m uint32, p uint8, keyLen uint32) []byte {
	if a.sema != nil {
		a.sema <- struct{}{}
		defer func() { <-a.sema }()
	}

	return argon2.IDKey([]byte(str+a.pepper), salt, t, m, p, keyLen)
}
