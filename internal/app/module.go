package app

import (
	"log/slog"
	"os"

	"github.com/jzmart/account/internal/account"
)

func (a *App) initModules() {
	if err := account.New(account.Dependency{
		DBConn:     a.dbConn,
		CacheConn:  a.cacheConn,
		Goroutine:  a.goroutine,
		Router:     a.router,
		Mail:       a.mail,
		Storage:    a.storage,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.uid,
		UUID:       a.uuid,
		HMAC:       a.hmac,
		Bcrypt:     a.bcrypt,
		Argon2ID:   a.argon2id,
		Clock:      a.clock,
		OTPCodec:   a.otpCodec,
		Validator:  a.validator,
		JWT:        a.jwt,
	}); err != nil {
		slog.Error("failed to init module account", "error", err)
		os.Exit(1)
	}
}
