package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvEndpoint, "grpc.example.com:443")
	t.Setenv(EnvXToken, "token-from-env")

	c := Config{}
	c.Grpc.Endpoint = "stale.example.com:443"
	c.ApplyEnv()

	assert.Equal(t, "grpc.example.com:443", c.Grpc.Endpoint)
	assert.Equal(t, "token-from-env", c.Grpc.XToken)
}

func TestValidate(t *testing.T) {
	c := Config{}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvEndpoint)

	c.Grpc.Endpoint = "grpc.example.com:443"
	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvXToken)

	c.Grpc.XToken = "secret"
	assert.NoError(t, c.Validate())
}
