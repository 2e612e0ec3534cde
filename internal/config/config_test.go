package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/permadao/arseed-go/internal/config"
)

func TestPrintServiceEnv(t *testing.T) {
	c := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(c, "", "  ")
	require.NoError(t, err)
}

func TestDefaults(t *testing.T) {
	c := config.DefaultServiceConfigFromEnv()
	assert.Equal(t, config.DefaultArseedingURL, c.Arseeding.URL)
	assert.Equal(t, config.DefaultEverpayURL, c.Everpay.URL)
	assert.NotZero(t, c.HTTPTimeout)
}

func TestSecretsAreNotMarshalled(t *testing.T) {
	c := config.DefaultServiceConfigFromEnv()
	c.Arseeding.APIKey = "super-secret"
	c.Signer.EthPrivateKey = "deadbeef"

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "super-secret")
	assert.NotContains(t, string(out), "deadbeef")
}
