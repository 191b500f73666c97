package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv      = "SECTORPULSE_CONFIG"
	serverAddrEnv      = "SECTORPULSE_ADDR"
	logLevelEnv        = "SECTORPULSE_LOG_LEVEL"
	marketauxAPIKeyEnv = "MARKETAUX_API_KEY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Provider  ProviderConfig  `yaml:"provider"`
	MarketAux MarketAuxConfig `yaml:"marketaux"`
	Cache     CacheConfig     `yaml:"cache"`
	Refresh   RefreshConfig   `yaml:"refresh"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdownTimeout"`
}

// ShutdownTimeoutDuration parses the shutdown grace period; defaults to 10s.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(s.ShutdownTimeout, 10*time.Second)
}

// ProviderConfig selects the active upstream news source.
type ProviderConfig struct {
	Name string `yaml:"name"`
}

// MarketAuxConfig wires the MarketAux API client.
type MarketAuxConfig struct {
	APIKey    string `yaml:"apiKey"`
	BaseURL   string `yaml:"baseUrl"`
	Language  string `yaml:"language"`
	Exchanges string `yaml:"exchanges"`
}

// CacheConfig bounds freshness and the daily upstream budget.
type CacheConfig struct {
	Duration   string `yaml:"duration"`
	DailyLimit int    `yaml:"dailyLimit"`
}

// CacheDuration parses the freshness window; defaults to 1h.
func (c CacheConfig) CacheDuration() time.Duration {
	return parseDuration(c.Duration, time.Hour)
}

// RefreshConfig drives the optional background cache warmer; a zero interval
// disables it.
type RefreshConfig struct {
	Interval string `yaml:"interval"`
	Limit    int    `yaml:"limit"`
}

// RefreshInterval parses the warm interval; empty means disabled.
func (r RefreshConfig) RefreshInterval() time.Duration {
	return parseDuration(r.Interval, 0)
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(marketauxAPIKeyEnv); v != "" {
		c.MarketAux.APIKey = v
	}
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.ShutdownTimeout != "" {
		base.Server.ShutdownTimeout = override.Server.ShutdownTimeout
	}

	if override.Provider.Name != "" {
		base.Provider.Name = override.Provider.Name
	}

	if override.MarketAux.APIKey != "" {
		base.MarketAux.APIKey = override.MarketAux.APIKey
	}
	if override.MarketAux.BaseURL != "" {
		base.MarketAux.BaseURL = override.MarketAux.BaseURL
	}
	if override.MarketAux.Language != "" {
		base.MarketAux.Language = override.MarketAux.Language
	}
	if override.MarketAux.Exchanges != "" {
		base.MarketAux.Exchanges = override.MarketAux.Exchanges
	}

	if override.Cache.Duration != "" {
		base.Cache.Duration = override.Cache.Duration
	}
	if override.Cache.DailyLimit > 0 {
		base.Cache.DailyLimit = override.Cache.DailyLimit
	}

	if override.Refresh.Interval != "" {
		base.Refresh.Interval = override.Refresh.Interval
	}
	if override.Refresh.Limit > 0 {
		base.Refresh.Limit = override.Refresh.Limit
	}

	return base
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("config: invalid duration %q, using %s", value, fallback)
		return fallback
	}
	return parsed
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Server:   ServerConfig{Addr: ":8001", ShutdownTimeout: "10s"},
		Provider: ProviderConfig{Name: "marketaux"},
		MarketAux: MarketAuxConfig{
			BaseURL:   "https://api.marketaux.com/v1",
			Language:  "en",
			Exchanges: "NYSE,NASDAQ",
		},
		Cache:   CacheConfig{Duration: "1h", DailyLimit: 100},
		Refresh: RefreshConfig{Interval: "", Limit: 50},
	}
}
