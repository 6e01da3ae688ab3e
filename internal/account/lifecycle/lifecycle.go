// Package lifecycle owns the one-time password state machine.
//
// For each (email, purpose) key a record moves NONE -> LIVE -> LIVE (extended)
// -> CONSUMED or EXPIRED. Consumed and expired records are deleted, so both
// are indistinguishable from NONE.
package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/jzmart/account/internal/account/entity"
)

var (
	// ErrUserAlreadyExists rejects a REGISTER issuance for a known email.
	ErrUserAlreadyExists = errors.New("lifecycle: user already exists")
	// ErrUserNotFound rejects a FORGOT_PASSWORD issuance for an unknown email.
	ErrUserNotFound = errors.New("lifecycle: user not found")
	// ErrOtpExpiredOrMissing means no live record exists for the key.
	ErrOtpExpiredOrMissing = errors.New("lifecycle: otp is expired or missing")
	// ErrInvalidOtp means the submitted code does not match the live record.
	ErrInvalidOtp = errors.New("lifecycle: invalid otp")
	// ErrCorruptEnvelope means a live record carries an envelope that cannot
	// be opened with the current secret.
	ErrCorruptEnvelope = errors.New("lifecycle: corrupt otp envelope")
	// ErrIssueInProgress means another request is issuing for the same key.
	ErrIssueInProgress = errors.New("lifecycle: otp issuance already in progress")
)

// Store persists OTP records. Implementations return goerror.ErrNotFound for
// missing rows and goerror.ErrConflict when a second record for the same
// (email, purpose) is inserted.
type Store interface {
	PurgeExpiredOTP(ctx context.Context, now time.Time) (int64, error)
	FindLiveOTP(ctx context.Context, email string, purpose entity.Purpose, now time.Time) (*entity.OTP, error)
	CreateOTP(ctx context.Context, otp entity.OTP) error
	ExtendOTP(ctx context.Context, id int64, envelope string, expiresAt time.Time) error
	DeleteOTP(ctx context.Context, id int64) error
}

// UserLookup answers issuance preconditions.
type UserLookup interface {
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)
}

// Codec generates codes and seals them into signed envelopes.
type Codec interface {
	Generate() (string, error)
	Encode(code string, ttl time.Duration) (string, error)
	Decode(envelope string) (string, error)
}

// Sender delivers a plaintext code to the user.
type Sender interface {
	SendOTP(ctx context.Context, email, code string) error
}

// Locker serializes issuance per key across replicas.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}

type clocker interface {
	Now() time.Time
}

type numberID interface {
	Generate() int64
}

type keyHasher interface {
	Hash(str string) ([]byte, error)
}
