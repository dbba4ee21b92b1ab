// Package app arma el grafo de dependencias del servidor con fx.
package app

import (
	"context"
	"net"
	"net/http"

	"petvax-hub/internal/adapters/auth/jwtauth"
	"petvax-hub/internal/adapters/auth/odin"
	"petvax-hub/internal/adapters/auth/password"
	"petvax-hub/internal/adapters/storage"
	"petvax-hub/internal/platform/config"
	"petvax-hub/internal/platform/logger"
	"petvax-hub/internal/ports/auth"
	"petvax-hub/internal/router"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Module agrupa todos los providers. main solo agrega config y el Invoke.
var Module = fx.Options(
	fx.Provide(
		NewLogger,
		NewStorage,
		NewAuth,
		NewHandler,
		NewServer,
	),
)

func NewLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})
}

// NewStorage abre el driver configurado y cierra las conexiones en OnStop.
func NewStorage(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (storage.Repositories, error) {
	repos, closeFn, err := storage.Open(context.Background(), cfg.Storage, log)
	if err != nil {
		return storage.Repositories{}, err
	}
	lc.Append(fx.Hook{
		OnStop: closeFn,
	})
	return repos, nil
}

// Auth son las piezas de autenticación según auth.provider.
type Auth struct {
	Verifier auth.AuthVerifier
	Issuer   auth.TokenIssuer
	Hasher   auth.PasswordHasher
}

func NewAuth(cfg *config.Config, log logger.Logger) (Auth, error) {
	a := Auth{Hasher: password.NewBcryptHasher(cfg.Auth.BcryptCost)}

	switch cfg.Auth.Provider {
	case "jwt":
		tokens, err := jwtauth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.App.Name)
		if err != nil {
			return Auth{}, err
		}
		a.Verifier = tokens
		a.Issuer = tokens
		if cfg.Auth.JWTSecret == "change-me" {
			log.Warn("auth.jwtSecret is the default value, set PETVAX_AUTH_JWTSECRET", nil)
		}

	case "odin":
		client, err := odin.NewClient(odin.Config{
			BaseURL:      cfg.Auth.Odin.BaseURL,
			APIKey:       cfg.Auth.Odin.APIKey,
			APIKeyHeader: cfg.Auth.Odin.APIKeyHeader,
			Timeout:      cfg.Auth.Odin.Timeout,
		})
		if err != nil {
			return Auth{}, err
		}
		a.Verifier = odin.NewVerifier(client)

	case "dev":
		log.Warn("auth provider is dev: X-Debug-User-ID is trusted without verification", nil)

	default:
		return Auth{}, errors.Errorf("unknown auth provider %q", cfg.Auth.Provider)
	}

	log.Info("auth ready", map[string]any{"provider": cfg.Auth.Provider})
	return a, nil
}

func NewHandler(cfg *config.Config, log logger.Logger, repos storage.Repositories, a Auth) http.Handler {
	return router.NewRouter(router.Options{
		Verifier:    a.Verifier,
		Issuer:      a.Issuer,
		Hasher:      a.Hasher,
		Repos:       &repos,
		Logger:      log,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Swagger:     cfg.HTTP.Swagger,
	})
}

// NewServer registra el arranque y el apagado ordenado del http.Server.
func NewServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, h http.Handler, log logger.Logger) *http.Server {
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return errors.Wrapf(err, "listen %s", srv.Addr)
			}
			log.Info("starting server", map[string]any{"addr": srv.Addr, "api": "/api"})

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server error", map[string]any{"error": err.Error()})
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping server", nil)
			return srv.Shutdown(ctx)
		},
	})

	return srv
}
