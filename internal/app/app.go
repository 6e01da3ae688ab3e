package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jzmart/account/internal/pkg/clock"
	"github.com/jzmart/account/internal/pkg/config"
	"github.com/jzmart/account/internal/pkg/goroutine"
	"github.com/jzmart/account/internal/pkg/hash"
	"github.com/jzmart/account/internal/pkg/instrument"
	"github.com/jzmart/account/internal/pkg/jwt"
	"github.com/jzmart/account/internal/pkg/mail"
	"github.com/jzmart/account/internal/pkg/otp"
	"github.com/jzmart/account/internal/pkg/router"
	"github.com/jzmart/account/internal/pkg/storage"
	"github.com/jzmart/account/internal/pkg/uid"
	"github.com/jzmart/account/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	argon2id  hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otpCodec  *otp.JWTCodec
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	mail      mail.Mail
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initTokens()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
