package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.MySQL.DSN)
	assert.Greater(t, cfg.MySQL.MaxOpenConns, 0)
	assert.Greater(t, cfg.MySQL.PingTimeout, time.Duration(0))
	assert.NotEmpty(t, cfg.ClickHouse.DSN)
	assert.NotEmpty(t, cfg.Redis.Addr)
	assert.NotEmpty(t, cfg.Kafka.Brokers)
	assert.NotEmpty(t, cfg.Kafka.OperationsTopic)
	assert.Equal(t, int64(1337), cfg.Ledger.ChainID)
	assert.NotEmpty(t, cfg.IPFS.APIAddr)
	assert.Greater(t, cfg.RateLimit.RPS, 0)
	assert.Greater(t, cfg.Recon.SweepInterval, time.Duration(0))
	assert.Greater(t, cfg.Recon.PageSize, 0)
}

func TestLoad_DefaultClients(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.NotEmpty(t, cfg.Auth.Clients)
	assert.NotEmpty(t, cfg.Auth.Clients[0].Name)
	assert.NotEmpty(t, cfg.Auth.Clients[0].Key)
}
