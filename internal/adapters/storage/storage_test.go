package storage

import (
	"context"
	"testing"

	"petvax-hub/internal/platform/config"
	"petvax-hub/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	repos, closeFn, err := Open(context.Background(), config.Storage{Driver: "memory"}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, closeFn)

	assert.NotNil(t, repos.Pets)
	assert.NotNil(t, repos.Vaccinations)
	assert.NotNil(t, repos.Users)
	assert.NoError(t, closeFn(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, closeFn, err := Open(context.Background(), config.Storage{Driver: "redis"}, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
	assert.NoError(t, closeFn(context.Background()))
}
