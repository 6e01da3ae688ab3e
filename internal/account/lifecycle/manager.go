package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/pkg/goerror"
	"github.com/jzmart/account/internal/pkg/instrument"
	"github.com/jzmart/account/internal/pkg/lock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultTTL is how long an issued or resent code stays valid.
	DefaultTTL = 10 * time.Minute

	defaultLockTTL = 15 * time.Second
)

// Config tunes a Manager.
type Config struct {
	// TTL is the code lifetime. Zero means DefaultTTL.
	TTL time.Duration
	// LockTTL bounds how long one issuance may hold the per-key lock.
	LockTTL time.Duration
}

// Dependency groups the Manager collaborators.
type Dependency struct {
	Store      Store
	Users      UserLookup
	Codec      Codec
	Sender     Sender
	Locker     Locker
	KeyHasher  keyHasher
	Clock      clocker
	UID        numberID
	Instrument instrument.Instrumentation
	Config     Config
}

// Manager decides whether a code is issued, resent or rejected, and checks
// submitted codes.
type Manager struct {
	store   Store
	users   UserLookup
	codec   Codec
	sender  Sender
	locker  Locker
	hasher  keyHasher
	clock   clocker
	uid     numberID
	ins     instrument.Instrumentation
	ttl     time.Duration
	lockTTL time.Duration
}

// NewManager builds a Manager. A nil Locker disables the per-key lock and
// leaves arbitration to the store's unique constraint.
func NewManager(dep Dependency) *Manager {
	m := &Manager{
		store:   dep.Store,
		users:   dep.Users,
		codec:   dep.Codec,
		sender:  dep.Sender,
		locker:  dep.Locker,
		hasher:  dep.KeyHasher,
		clock:   dep.Clock,
		uid:     dep.UID,
		ins:     dep.Instrument,
		ttl:     dep.Config.TTL,
		lockTTL: dep.Config.LockTTL,
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	if m.lockTTL <= 0 {
		m.lockTTL = defaultLockTTL
	}
	if m.locker == nil {
		m.locker = lock.Nop{}
	}
	if m.ins == nil {
		m.ins = instrument.NewNoop()
	}
	return m
}

// TTL returns the configured code lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) startSpan(ctx context.Context, name string, purpose entity.Purpose) (context.Context, trace.Span) {
	return m.ins.Tracer("account.lifecycle").Start(ctx, name,
		trace.WithAttributes(attribute.String("otp.purpose", purpose.String())))
}

// expiry is truncated to whole seconds so it matches the envelope exp claim.
func (m *Manager) expiry(now time.Time) time.Time {
	return now.Add(m.ttl).Truncate(time.Second)
}

// Issue sends a code for (email, purpose). A live record is extended and its
// code resent; otherwise a new code is created.
func (m *Manager) Issue(ctx context.Context, email string, purpose entity.Purpose) error {
	ctx, span := m.startSpan(ctx, "Issue", purpose)
	defer span.End()

	email = entity.NormalizeEmail(email)

	exists, err := m.users.ExistsUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check user exists: %w", err)
	}
	switch {
	case purpose == entity.PurposeRegister && exists:
		return ErrUserAlreadyExists
	case purpose == entity.PurposeForgotPassword && !exists:
		return ErrUserNotFound
	}

	release, err := m.acquire(ctx, email, purpose)
	if err != nil {
		return err
	}
	defer func() {
		if rErr := release(context.WithoutCancel(ctx)); rErr != nil {
			slog.WarnContext(ctx, "failed to release otp issue lock", "purpose", purpose, "error", rErr)
		}
	}()

	now := m.clock.Now()

	purged, err := m.store.PurgeExpiredOTP(ctx, now)
	if err != nil {
		return fmt.Errorf("purge expired otp: %w", err)
	}
	if purged > 0 {
		slog.DebugContext(ctx, "purged expired otp records", "count", purged)
	}

	live, err := m.store.FindLiveOTP(ctx, email, purpose, now)
	if errors.Is(err, goerror.ErrNotFound) {
		code, created, err := m.create(ctx, email, purpose, now)
		if err != nil {
			return err
		}
		if created {
			return m.send(ctx, email, code)
		}

		// lost the insert race; the winner's record is live now
		live, err = m.store.FindLiveOTP(ctx, email, purpose, now)
		if err != nil {
			return fmt.Errorf("find live otp after conflict: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("find live otp: %w", err)
	}

	code, err := m.resend(ctx, live, now)
	if err != nil {
		return err
	}
	return m.send(ctx, email, code)
}

func (m *Manager) acquire(ctx context.Context, email string, purpose entity.Purpose) (func(context.Context) error, error) {
	key, err := m.lockKey(email, purpose)
	if err != nil {
		return nil, fmt.Errorf("build otp lock key: %w", err)
	}

	release, err := m.locker.Acquire(ctx, key, m.lockTTL)
	if errors.Is(err, lock.ErrLocked) {
		return nil, ErrIssueInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("acquire otp lock: %w", err)
	}
	return release, nil
}

func (m *Manager) lockKey(email string, purpose entity.Purpose) (string, error) {
	raw := "otp:" + purpose.String() + "|" + email
	if m.hasher == nil {
		return raw, nil
	}
	sum, err := m.hasher.Hash(raw)
	if err != nil {
		return "", err
	}
	return "otp:" + string(sum), nil
}

// create inserts a fresh record. It reports created=false when a concurrent
// request inserted first.
func (m *Manager) create(ctx context.Context, email string, purpose entity.Purpose, now time.Time) (string, bool, error) {
	code, err := m.codec.Generate()
	if err != nil {
		return "", false, fmt.Errorf("generate otp: %w", err)
	}

	envelope, err := m.codec.Encode(code, m.ttl)
	if err != nil {
		return "", false, fmt.Errorf("encode otp: %w", err)
	}

	err = m.store.CreateOTP(ctx, entity.OTP{
		ID:        m.uid.Generate(),
		Email:     email,
		Purpose:   purpose,
		Envelope:  envelope,
		ExpiresAt: m.expiry(now),
	})
	if errors.Is(err, goerror.ErrConflict) {
		slog.InfoContext(ctx, "concurrent otp issuance detected, resending winner", "purpose", purpose)
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("create otp: %w", err)
	}

	return code, true, nil
}

// resend opens the live record, pushes its expiry to now+TTL and reseals the
// same code so the embedded expiry follows the stored one.
func (m *Manager) resend(ctx context.Context, live *entity.OTP, now time.Time) (string, error) {
	code, err := m.codec.Decode(live.Envelope)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decode live otp envelope", "otp_id", live.ID, "error", err)
		return "", fmt.Errorf("%w: %w", ErrCorruptEnvelope, err)
	}

	envelope, err := m.codec.Encode(code, m.ttl)
	if err != nil {
		return "", fmt.Errorf("encode otp: %w", err)
	}

	if err := m.store.ExtendOTP(ctx, live.ID, envelope, m.expiry(now)); err != nil {
		return "", fmt.Errorf("extend otp: %w", err)
	}

	return code, nil
}

func (m *Manager) send(ctx context.Context, email, code string) error {
	if err := m.sender.SendOTP(ctx, email, code); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

// Verify checks code against the live record for (email, purpose). The record
// is left in place; callers Consume it after their dependent write succeeds.
func (m *Manager) Verify(ctx context.Context, email string, purpose entity.Purpose, code string) (*entity.OTP, error) {
	ctx, span := m.startSpan(ctx, "Verify", purpose)
	defer span.End()

	email = entity.NormalizeEmail(email)

	live, err := m.store.FindLiveOTP(ctx, email, purpose, m.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, ErrOtpExpiredOrMissing
	}
	if err != nil {
		return nil, fmt.Errorf("find live otp: %w", err)
	}

	stored, err := m.codec.Decode(live.Envelope)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decode live otp envelope", "otp_id", live.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCorruptEnvelope, err)
	}

	if stored != code {
		return nil, ErrInvalidOtp
	}

	return live, nil
}

// Consume deletes a verified record. Deleting an already consumed record is
// not an error.
func (m *Manager) Consume(ctx context.Context, otp *entity.OTP) error {
	ctx, span := m.startSpan(ctx, "Consume", otp.Purpose)
	defer span.End()

	if err := m.store.DeleteOTP(ctx, otp.ID); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}
