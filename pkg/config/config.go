package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the bridge node configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Ethereum   EthereumConfig   `mapstructure:"ethereum" yaml:"ethereum"`
	Bridge     BridgeConfig     `mapstructure:"bridge" yaml:"bridge"`
	PriceFeed  PriceFeedConfig  `mapstructure:"price_feed" yaml:"price_feed"`
	Dispatcher DispatcherConfig `mapstructure:"dispatcher" yaml:"dispatcher"`
	Monitoring MonitoringConfig `mapstructure:"monitoring" yaml:"monitoring"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Shutdown   ShutdownConfig   `mapstructure:"shutdown" yaml:"shutdown"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host" yaml:"host" default:"0.0.0.0"`
	Port         int           `mapstructure:"port" yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" default:"15s"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" default:"15s"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout" default:"60s"`
}

// DatabaseConfig contains database connection settings. With Enabled false all
// state is kept in memory.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled" default:"true"`
	Host     string `mapstructure:"host" yaml:"host" default:"localhost" validate:"required_if=Enabled true"`
	Port     int    `mapstructure:"port" yaml:"port" default:"5432"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database" default:"insured_bridge"`
	SSLMode  string `mapstructure:"ssl_mode" yaml:"ssl_mode" default:"disable"`
}

// EthereumConfig contains the local chain client settings
type EthereumConfig struct {
	RPCURL          string `mapstructure:"rpc_url" yaml:"rpc_url" validate:"required"`
	ChainID         int64  `mapstructure:"chain_id" yaml:"chain_id"`
	PayerPrivateKey string `mapstructure:"payer_private_key" yaml:"payer_private_key" validate:"required"`
	GasLimit        uint64 `mapstructure:"gas_limit" yaml:"gas_limit" default:"21000"`
	MaxGasPrice     string `mapstructure:"max_gas_price" yaml:"max_gas_price"`
}

// BridgeConfig contains the accounting parameters of this bridge instance
type BridgeConfig struct {
	LocalChainID         uint64        `mapstructure:"local_chain_id" yaml:"local_chain_id" validate:"required"`
	RemoteChainID        uint64        `mapstructure:"remote_chain_id" yaml:"remote_chain_id" validate:"required,nefield=LocalChainID"`
	FinalityPeriod       uint64        `mapstructure:"finality_period" yaml:"finality_period" default:"64"`
	OutboundFeeBps       uint64        `mapstructure:"outbound_fee_bps" yaml:"outbound_fee_bps" default:"10" validate:"lte=10000"`
	InboundFeeBps        uint64        `mapstructure:"inbound_fee_bps" yaml:"inbound_fee_bps" default:"10" validate:"lte=10000"`
	InsuranceRewardShare uint64        `mapstructure:"insurance_reward_share" yaml:"insurance_reward_share" default:"20" validate:"lte=100"`
	WireVersion          string        `mapstructure:"wire_version" yaml:"wire_version" default:"v3" validate:"oneof=v1 v2 v3"`
	SweepInterval        time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval" default:"30s"`
}

// PriceFeedConfig selects and configures the native/USD oracle
type PriceFeedConfig struct {
	Source       string        `mapstructure:"source" yaml:"source" default:"coingecko" validate:"oneof=static coingecko"`
	StaticPrice  string        `mapstructure:"static_price" yaml:"static_price" validate:"required_if=Source static"`
	CoinID       string        `mapstructure:"coin_id" yaml:"coin_id" default:"ethereum"`
	BaseURL      string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey       string        `mapstructure:"api_key" yaml:"api_key"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval" default:"1m"`
	MaxAge       time.Duration `mapstructure:"max_age" yaml:"max_age" default:"5m"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout" default:"10s"`
}

// DispatcherConfig configures message delivery to the counterpart bridge
type DispatcherConfig struct {
	RemoteURL    string        `mapstructure:"remote_url" yaml:"remote_url" validate:"required,url"`
	SharedSecret string        `mapstructure:"shared_secret" yaml:"shared_secret" validate:"required,min=32"`
	Issuer       string        `mapstructure:"issuer" yaml:"issuer" default:"insured-bridge"`
	TokenTTL     time.Duration `mapstructure:"token_ttl" yaml:"token_ttl" default:"1m"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout" default:"10s"`
	ValueWei     string        `mapstructure:"value_wei" yaml:"value_wei" default:"0"`
	HookMetadata string        `mapstructure:"hook_metadata" yaml:"hook_metadata"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" default:"true"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level" default:"info"`
	Format     string `mapstructure:"format" yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path" default:"stdout"`
}

// ShutdownConfig contains graceful shutdown settings
type ShutdownConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" default:"30s"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := defaults.Set(&config); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}
	return nil
}

// Address returns host:port of the database server
func (c *DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Redacted renders the configuration as YAML with secrets masked.
func (c *Config) Redacted() ([]byte, error) {
	cp := *c
	cp.Database.Password = mask(cp.Database.Password)
	cp.Ethereum.PayerPrivateKey = mask(cp.Ethereum.PayerPrivateKey)
	cp.PriceFeed.APIKey = mask(cp.PriceFeed.APIKey)
	cp.Dispatcher.SharedSecret = mask(cp.Dispatcher.SharedSecret)
	return yaml.Marshal(&cp)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
