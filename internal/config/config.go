package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Cache != nil {
		if cfg.Cache.TTL == 0 {
			cfg.Cache.TTL = DefaultCacheTTL
		}
		if cfg.Cache.Size == 0 {
			cfg.Cache.Size = DefaultCacheSize
		}
	}
	if cfg.Buffer == nil {
		cfg.Buffer = &BufferConfig{}
	}
	if cfg.Buffer.MaxBatchSize == 0 {
		cfg.Buffer.MaxBatchSize = DefaultMaxBatchSize
	}
	// CoalescingDelay default is 0, which is valid
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	if cfg.RPCURL == "" && cfg.WSURL == "" {
		return errors.New("at least one of rpcUrl or wsUrl is required")
	}
	if cfg.PreferWS && cfg.WSURL == "" {
		return errors.New("preferWs requires wsUrl")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("logLevel must be one of: debug, info, warn, error")
	}

	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("requestTimeout must be non-negative")
	}

	if cfg.Cache != nil && cfg.Cache.Enabled {
		if cfg.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled")
		}
		if cfg.Cache.Size <= 0 {
			return fmt.Errorf("cache.size must be positive when cache is enabled")
		}
	}

	if cfg.Buffer.MaxConcurrentRequests < 0 {
		return fmt.Errorf("buffer.maxConcurrentRequests must be non-negative")
	}
	if cfg.Buffer.MaxBatchSize <= 0 {
		return fmt.Errorf("buffer.maxBatchSize must be positive")
	}
	if cfg.Buffer.CoalescingDelay < 0 {
		return fmt.Errorf("buffer.coalescingDelay must be non-negative")
	}

	return nil
}
