package app

import (
	"net/http"
	"testing"

	"petvax-hub/internal/platform/config"
	"petvax-hub/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom("", func() []string { return nil })
	require.NoError(t, err)
	return cfg
}

type noopShutdowner struct{}

func (noopShutdowner) Shutdown(...fx.ShutdownOption) error { return nil }

func TestModule_GraphIsComplete(t *testing.T) {
	err := fx.ValidateApp(
		fx.Supply(testConfig(t)),
		Module,
		fx.Invoke(func(*http.Server) {}),
	)
	assert.NoError(t, err)
}

func TestNewAuth_ByProvider(t *testing.T) {
	log := logger.Nop()

	cfg := testConfig(t)
	cfg.Auth.Provider = "jwt"
	a, err := NewAuth(cfg, log)
	require.NoError(t, err)
	assert.NotNil(t, a.Verifier)
	assert.NotNil(t, a.Issuer)
	assert.NotNil(t, a.Hasher)

	cfg.Auth.Provider = "dev"
	a, err = NewAuth(cfg, log)
	require.NoError(t, err)
	assert.Nil(t, a.Verifier)
	assert.Nil(t, a.Issuer)

	cfg.Auth.Provider = "odin"
	cfg.Auth.Odin.BaseURL = "http://odin.local"
	a, err = NewAuth(cfg, log)
	require.NoError(t, err)
	assert.NotNil(t, a.Verifier)
	assert.Nil(t, a.Issuer)

	cfg.Auth.Provider = "ldap"
	_, err = NewAuth(cfg, log)
	assert.Error(t, err)
}

func TestNewServer_UsesHTTPConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.Port = 5050

	lc := fxtest.NewLifecycle(t)
	srv := NewServer(lc, noopShutdowner{}, cfg, http.NotFoundHandler(), logger.Nop())

	assert.Equal(t, ":5050", srv.Addr)
	assert.Equal(t, cfg.HTTP.ReadTimeout, srv.ReadTimeout)
	assert.Equal(t, cfg.HTTP.WriteTimeout, srv.WriteTimeout)
	assert.Equal(t, cfg.HTTP.IdleTimeout, srv.IdleTimeout)
}

func TestNewStorage_MemoryClosesOnStop(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "memory"

	lc := fxtest.NewLifecycle(t)
	repos, err := NewStorage(lc, cfg, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, repos.Pets)

	lc.RequireStart().RequireStop()
}
