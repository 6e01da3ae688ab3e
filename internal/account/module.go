package account

import (
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jzmart/account/internal/account/inbound"
	"github.com/jzmart/account/internal/account/lifecycle"
	"github.com/jzmart/account/internal/account/outbound/db"
	"github.com/jzmart/account/internal/account/outbound/email"
	"github.com/jzmart/account/internal/account/usecase"
	"github.com/jzmart/account/internal/pkg/clock"
	"github.com/jzmart/account/internal/pkg/config"
	"github.com/jzmart/account/internal/pkg/goroutine"
	"github.com/jzmart/account/internal/pkg/hash"
	"github.com/jzmart/account/internal/pkg/instrument"
	"github.com/jzmart/account/internal/pkg/jwt"
	"github.com/jzmart/account/internal/pkg/lock"
	"github.com/jzmart/account/internal/pkg/mail"
	"github.com/jzmart/account/internal/pkg/otp"
	"github.com/jzmart/account/internal/pkg/router"
	"github.com/jzmart/account/internal/pkg/storage"
	"github.com/jzmart/account/internal/pkg/uid"
	"github.com/jzmart/account/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              // optional, issuance is not serialized across instances without it
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Argon2ID   hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	OTPCodec   *otp.JWTCodec              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	ttl := dep.Config.GetMinute("modules.account.otp.ttl_minutes")
	if ttl <= 0 {
		ttl = lifecycle.DefaultTTL
	}

	var locker lifecycle.Locker = lock.Nop{}
	if dep.CacheConn != nil {
		locker = lock.NewRedis(dep.CacheConn, dep.UUID)
	}

	dbAccount := db.NewDB(dep.DBConn, dep.Instrument)
	sender := email.New(dep.Mail, dep.Instrument, dep.Clock, email.Config{
		TTL:            ttl,
		SupportAddress: dep.Config.GetString("modules.account.support_email"),
	})

	manager := lifecycle.NewManager(lifecycle.Dependency{
		Store:      dbAccount,
		Users:      dbAccount,
		Codec:      dep.OTPCodec,
		Sender:     sender,
		Locker:     locker,
		KeyHasher:  dep.HMAC,
		Clock:      dep.Clock,
		UID:        dep.UID,
		Instrument: dep.Instrument,
		Config: lifecycle.Config{
			TTL:     ttl,
			LockTTL: dep.Config.GetSecond("modules.account.otp.lock_ttl_seconds"),
		},
	})

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbAccount,
		OTP:        manager,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Storage:    dep.Storage,
		Argon2ID:   dep.Argon2ID,
		Bcrypt:     dep.Bcrypt,
		UID:        dep.UID,
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
		Goroutine:  dep.Goroutine,
	})

	secureCookie := dep.Config.GetBool("app.server.secure_cookie") ||
		strings.EqualFold(dep.Config.GetString("app.env"), "production")
	inbound.RegisterHTTPEndpoint(dep.Router, uc, secureCookie)

	return nil
}
