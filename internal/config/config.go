package config

import (
	"bytes"
	_ "embed"
	"time"

	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

// ---- Root ----

type Config struct {
	HTTP       HTTPConfig      `mapstructure:"http"`
	Log        LogConfig       `mapstructure:"log"`
	MySQL      DatabaseConfig  `mapstructure:"mysql"`
	ClickHouse DatabaseConfig  `mapstructure:"clickhouse"`
	Redis      RedisConfig     `mapstructure:"redis"`
	Kafka      KafkaConfig     `mapstructure:"kafka"`
	Ledger     LedgerConfig    `mapstructure:"ledger"`
	IPFS       IPFSConfig      `mapstructure:"ipfs"`
	Auth       AuthConfig      `mapstructure:"auth"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Recon      ReconConfig     `mapstructure:"recon"`
}

// ---- Leaf structs ----

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idletime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type KafkaConfig struct {
	Brokers         []string      `mapstructure:"brokers"`
	OperationsTopic string        `mapstructure:"operations_topic"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
}

// LedgerConfig holds the EVM endpoint and the single operating account that
// signs every write. End-user accounts never sign; they are recorded as
// attribution only.
type LedgerConfig struct {
	RPCURL          string `mapstructure:"rpc_url"`
	ChainID         int64  `mapstructure:"chain_id"`
	PrivateKey      string `mapstructure:"private_key"`
	RegistryAddress string `mapstructure:"registry_address"`
	TokenAddress    string `mapstructure:"token_address"`
}

type IPFSConfig struct {
	APIAddr string        `mapstructure:"api_addr"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	Clients []APIClient `mapstructure:"clients"`
}

// APIClient is one allowed caller of the HTTP API.
type APIClient struct {
	Name string `mapstructure:"name"`
	Key  string `mapstructure:"key"`
	RPS  int    `mapstructure:"rps"`
}

type RateLimitConfig struct {
	RPS   int `mapstructure:"rps"`
	Burst int `mapstructure:"burst"`
}

type ReconConfig struct {
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	PageSize      int           `mapstructure:"page_size"`
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env overrides (MESALISTA_*).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		_ = v.MergeInConfig()
	}

	// env override (MESALISTA_*)
	v.SetEnvPrefix("MESALISTA")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
