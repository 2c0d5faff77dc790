package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artzone/artzone-indexer/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEventEmitterConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
debug: true
database:
  host: localhost
  user: artzone
  password: secret
  dbname: artzone_indexer
nats:
  url: nats://localhost:4222
ethereum:
  websocket_url: wss://mainnet.example/ws
  contract_address: "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2"
  start_block: 15000000
cursor:
  save_freq: 50
`)

	cfg, err := config.LoadEventEmitterConfig(path, "")
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "wss://mainnet.example/ws", cfg.Ethereum.WebSocketURL)
	assert.Equal(t, uint64(15000000), cfg.Ethereum.StartBlock)
	assert.Equal(t, uint64(50), cfg.Cursor.SaveFreq)

	// Defaults fill whatever the file leaves out
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "ARTZONE_EVENTS", cfg.NATS.StreamName)
	assert.Equal(t, "artzone.events", cfg.NATS.SubjectPrefix)
	assert.Equal(t, "eip155:1", cfg.Ethereum.ChainID)
	assert.Equal(t, uint64(10000), cfg.Ethereum.BackfillStep)
	assert.Equal(t, 12*time.Second, cfg.Ethereum.BlockHeadTTL)
	assert.Equal(t, 30*time.Second, cfg.Cursor.SaveDelay)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestLoadIndexerConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: localhost
  user: artzone
  dbname: artzone_indexer
nats:
  url: nats://localhost:4222
  consumer_name: indexer-staging
ethereum:
  rpc_url: https://mainnet.example
ipfs:
  gateways:
    - https://ipfs.example/ipfs/
`)

	cfg, err := config.LoadIndexerConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, "indexer-staging", cfg.NATS.ConsumerName)
	assert.Equal(t, "https://mainnet.example", cfg.Ethereum.RPCURL)
	assert.Equal(t, []string{"https://ipfs.example/ipfs/"}, cfg.IPFS.Gateways)
	assert.Equal(t, 9091, cfg.Metrics.Port)
}

func TestLoadIndexerConfigFromEnvironment(t *testing.T) {
	t.Setenv("ARTZONE_DATABASE_HOST", "db.internal")
	t.Setenv("ARTZONE_DATABASE_PASSWORD", "hunter2")
	t.Setenv("ARTZONE_NATS_URL", "nats://broker.internal:4222")
	t.Setenv("ARTZONE_ETHEREUM_CONTRACT_ADDRESS", "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2")

	// No config file anywhere near the package directory; only env vars apply
	cfg, err := config.LoadIndexerConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, "nats://broker.internal:4222", cfg.NATS.URL)
	assert.Equal(t, "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2", cfg.Ethereum.ContractAddress)
	assert.Equal(t, "artzone-indexer", cfg.NATS.ConsumerName)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "artzone",
		Password: "secret",
		DBName:   "artzone_indexer",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=artzone password=secret dbname=artzone_indexer sslmode=disable",
		cfg.DSN())
}
