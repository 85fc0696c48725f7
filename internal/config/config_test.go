// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ServerTimeouts(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 25*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Server.RequestTimeout < cfg.Server.WriteTimeout,
		"the per-request deadline must fire before the connection write timeout")
}

func TestLoad_RequestTimeoutOverride(t *testing.T) {
	t.Setenv("SERVER_REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
}
