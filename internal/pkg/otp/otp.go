package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CodeLength is the number of digits in a generated code.
const CodeLength = 6

var (
	// ErrSecretRequired is returned when the codec is built without a signing secret.
	ErrSecretRequired = errors.New("otp: signing secret is required")

	// ErrInvalidEnvelope is returned when an envelope fails signature, expiry or payload checks.
	ErrInvalidEnvelope = errors.New("otp: invalid envelope")
)

//nolint:gochecknoglobals // constant upper bound for code generation
var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a uniformly random 6-digit numeric code.
// Leading zeros are kept.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}

	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

// IsCode reports whether s has the shape of a generated code.
func IsCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type clocker interface {
	Now() time.Time
}

type envelopeClaims struct {
	jwt.RegisteredClaims
	OTP string `json:"otp"`
}

// JWTCodec seals codes into HS256 signed JWTs carrying an "otp" claim.
type JWTCodec struct {
	secret []byte
	clock  clocker
}

// NewJWTCodec builds a codec signing with secret and reading time from clock.
func NewJWTCodec(secret []byte, clock clocker) (*JWTCodec, error) {
	if len(secret) == 0 {
		return nil, ErrSecretRequired
	}

	return &JWTCodec{secret: secret, clock: clock}, nil
}

// Generate returns a fresh random code.
func (c *JWTCodec) Generate() (string, error) {
	return GenerateCode()
}

// Encode wraps code into an envelope that expires after ttl.
func (c *JWTCodec) Encode(code string, ttl time.Duration) (string, error) {
	now := c.clock.Now()

	return jwt.NewWithClaims(jwt.SigningMethodHS256, envelopeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		OTP: code,
	}).SignedString(c.secret)
}

// Decode verifies envelope and returns the code it carries.
func (c *JWTCodec) Decode(envelope string) (string, error) {
	var claims envelopeClaims

	_, err := jwt.ParseWithClaims(envelope, &claims,
		func(*jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	if !IsCode(claims.OTP) {
		return "", fmt.Errorf("%w: malformed otp claim", ErrInvalidEnvelope)
	}

	return claims.OTP, nil
}
