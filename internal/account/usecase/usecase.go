package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/account/lifecycle"
	"github.com/jzmart/account/internal/pkg/clock"
	"github.com/jzmart/account/internal/pkg/config"
	"github.com/jzmart/account/internal/pkg/goerror"
	"github.com/jzmart/account/internal/pkg/goroutine"
	"github.com/jzmart/account/internal/pkg/hash"
	"github.com/jzmart/account/internal/pkg/instrument"
	"github.com/jzmart/account/internal/pkg/jwt"
	"github.com/jzmart/account/internal/pkg/storage"
	"github.com/jzmart/account/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserCredentialByEmail(ctx context.Context, email string) (*entity.UserCredential, error)
	GetUserCredentialByID(ctx context.Context, id int64) (*entity.UserCredential, error)

	CreateUser(ctx context.Context, nu entity.NewUser) (*entity.User, error)

	UpdateUserPassword(ctx context.Context, email, hash string) error
	UpdateUserPasswordByID(ctx context.Context, id int64, hash string) error
	UpdateUserProfile(ctx context.Context, id int64, p entity.UserProfile) (*entity.User, error)
	UpdateUserAvatar(ctx context.Context, id int64, url, key string) (string, error)

	DeleteUser(ctx context.Context, id int64) (string, error)
}

type otpManager interface {
	Issue(ctx context.Context, email string, purpose entity.Purpose) error
	Verify(ctx context.Context, email string, purpose entity.Purpose, code string) (*entity.OTP, error)
	Consume(ctx context.Context, otp *entity.OTP) error
}

type numberID interface {
	Generate() int64
}

type stringID interface {
	Generate() string
}

type Usecase struct {
	repoDB    repoDB
	otp       otpManager
	validator validator.Validator
	cfg       config.Config
	storage   storage.Storage
	argon2id  hash.Hash
	bcrypt    hash.Hash
	uid       numberID
	uuid      stringID
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
}

type Dependency struct {
	RepoDB     repoDB
	OTP        otpManager
	Validator  validator.Validator
	Config     config.Config
	Storage    storage.Storage
	Argon2ID   hash.Hash
	Bcrypt     hash.Hash
	UID        numberID
	UUID       stringID
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		otp:       dep.OTP,
		validator: dep.Validator,
		cfg:       dep.Config,
		storage:   dep.Storage,
		argon2id:  dep.Argon2ID,
		bcrypt:    dep.Bcrypt,
		uid:       dep.UID,
		uuid:      dep.UUID,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
		goroutine: dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

// Session is a freshly issued session token.
type Session struct {
	Token string
	TTL   time.Duration
}

func (s *Usecase) newSession(ctx context.Context, user *entity.User) (*Session, error) {
	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &Session{Token: token, TTL: s.jwt.TTL()}, nil
}

// currentUser loads the authenticated user. A token whose user is gone is
// reported as not found.
func (s *Usecase) currentUser(ctx context.Context) (*entity.User, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Unauthorized, please login", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}

// verifyPassword checks argon2id hashes and bcrypt hashes written before the
// switch to argon2id.
func (s *Usecase) verifyPassword(hashed, password string) bool {
	if isBcrypt(hashed) {
		return s.bcrypt.Verify(hashed, password)
	}
	return s.argon2id.Verify(hashed, password)
}

func isBcrypt(hashed string) bool {
	return strings.HasPrefix(hashed, "$2a$") || strings.HasPrefix(hashed, "$2b$") || strings.HasPrefix(hashed, "$2y$")
}

// otpError converts lifecycle failures into responses. Unknown errors are
// logged with msg and reported as server errors.
func otpError(ctx context.Context, err error, msg string, kv ...any) error {
	switch {
	case errors.Is(err, lifecycle.ErrUserAlreadyExists):
		return goerror.NewBusiness("User already exists.", goerror.CodeConflict)
	case errors.Is(err, lifecycle.ErrUserNotFound):
		return goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	case errors.Is(err, lifecycle.ErrOtpExpiredOrMissing):
		return goerror.NewBusiness("OTP is expired or does not exist", goerror.CodeUnauthorized)
	case errors.Is(err, lifecycle.ErrInvalidOtp):
		return goerror.NewBusiness("Invalid OTP", goerror.CodeUnauthorized)
	case errors.Is(err, lifecycle.ErrIssueInProgress):
		return goerror.NewBusiness("An OTP request for this email is already in progress", goerror.CodeTooManyRequest)
	default:
		slog.ErrorContext(ctx, msg, append(kv, "error", err)...)
		return goerror.NewServer(err)
	}
}
