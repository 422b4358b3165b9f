package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfigFromEnv(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	cfg, err := ServerConfigFromEnv(getenv)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)

	env["PORT"] = "9090"
	env["HOST"] = "127.0.0.1"
	cfg, err = ServerConfigFromEnv(getenv)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Host)

	env["PORT"] = "http"
	_, err = ServerConfigFromEnv(getenv)
	assert.Error(t, err)
}
