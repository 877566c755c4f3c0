package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const minimalConfig = `
database:
  enabled: false
ethereum:
  rpc_url: http://localhost:8545
  payer_private_key: "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
bridge:
  local_chain_id: 1
  remote_chain_id: 10
  finality_period: 12
price_feed:
  source: static
  static_price: "2500.5"
dispatcher:
  remote_url: http://remote-bridge:8080
  shared_secret: "0123456789abcdef0123456789abcdef"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, uint64(1), cfg.Bridge.LocalChainID)
	assert.Equal(t, uint64(12), cfg.Bridge.FinalityPeriod)
	assert.Equal(t, uint64(10), cfg.Bridge.OutboundFeeBps)
	assert.Equal(t, uint64(20), cfg.Bridge.InsuranceRewardShare)
	assert.Equal(t, "v3", cfg.Bridge.WireVersion)
	assert.Equal(t, 30*time.Second, cfg.Bridge.SweepInterval)
	assert.Equal(t, "static", cfg.PriceFeed.Source)
	assert.Equal(t, 5*time.Minute, cfg.PriceFeed.MaxAge)
	assert.Equal(t, "insured-bridge", cfg.Dispatcher.Issuer)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 30*time.Second, cfg.Shutdown.Timeout)
}

func TestLoad_ValidationErrors(t *testing.T) {
	bad := map[string]string{
		"same chain ids": `
ethereum: {rpc_url: http://x, payer_private_key: k}
database: {enabled: false}
bridge: {local_chain_id: 5, remote_chain_id: 5}
price_feed: {source: static, static_price: "1"}
dispatcher: {remote_url: http://r, shared_secret: "0123456789abcdef0123456789abcdef"}
`,
		"fee too high": `
ethereum: {rpc_url: http://x, payer_private_key: k}
database: {enabled: false}
bridge: {local_chain_id: 1, remote_chain_id: 2, outbound_fee_bps: 10001}
price_feed: {source: static, static_price: "1"}
dispatcher: {remote_url: http://r, shared_secret: "0123456789abcdef0123456789abcdef"}
`,
		"short secret": `
ethereum: {rpc_url: http://x, payer_private_key: k}
database: {enabled: false}
bridge: {local_chain_id: 1, remote_chain_id: 2}
price_feed: {source: static, static_price: "1"}
dispatcher: {remote_url: http://r, shared_secret: "short"}
`,
		"unknown wire version": `
ethereum: {rpc_url: http://x, payer_private_key: k}
database: {enabled: false}
bridge: {local_chain_id: 1, remote_chain_id: 2, wire_version: v9}
price_feed: {source: static, static_price: "1"}
dispatcher: {remote_url: http://r, shared_secret: "0123456789abcdef0123456789abcdef"}
`,
		"static price missing": `
ethereum: {rpc_url: http://x, payer_private_key: k}
database: {enabled: false}
bridge: {local_chain_id: 1, remote_chain_id: 2}
price_feed: {source: static}
dispatcher: {remote_url: http://r, shared_secret: "0123456789abcdef0123456789abcdef"}
`,
	}
	for name, content := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRedacted(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	out, err := cfg.Redacted()
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "****", decoded.Ethereum.PayerPrivateKey)
	assert.Equal(t, "****", decoded.Dispatcher.SharedSecret)
	assert.Equal(t, "", decoded.PriceFeed.APIKey)
	assert.Equal(t, uint64(10), decoded.Bridge.RemoteChainID)
	assert.NotContains(t, string(out), "0123456789abcdef")
}
