package config

import "time"

// Config represents the client configuration structure
type Config struct {
	RPCURL         string        `json:"rpcUrl"`
	WSURL          string        `json:"wsUrl"`
	PreferWS       bool          `json:"preferWs"`
	LogLevel       string        `json:"logLevel"`
	RequestTimeout int           `json:"requestTimeout"` // ms - timeout for a single transport exchange
	Cache          *CacheConfig  `json:"cache,omitempty"`
	Buffer         *BufferConfig `json:"buffer,omitempty"`
}

// CacheConfig represents response cache configuration
type CacheConfig struct {
	Enabled         bool     `json:"enabled"`
	TTL             int      `json:"ttl"`             // seconds
	Size            int      `json:"size"`            // number of entries
	DisabledMethods []string `json:"disabledMethods"` // methods to exclude from caching
}

// BufferConfig represents call coalescing configuration
type BufferConfig struct {
	MaxConcurrentRequests int `json:"maxConcurrentRequests"` // 0 means unbounded
	MaxBatchSize          int `json:"maxBatchSize"`
	CoalescingDelay       int `json:"coalescingDelay"` // ms - how long a chunk stays open after its first call
}

// Default values
const (
	DefaultLogLevel        = "info"
	DefaultRequestTimeout  = 5000 // ms
	DefaultMaxBatchSize    = 20
	DefaultCoalescingDelay = 0 // ms - flush as soon as the collector wakes
	DefaultCacheTTL        = 60
	DefaultCacheSize       = 10000
)

// GetRequestTimeoutDuration returns request timeout as time.Duration
func (c *Config) GetRequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Millisecond
}

// IsCacheEnabled returns true if the cache is configured and enabled
func (c *Config) IsCacheEnabled() bool {
	return c.Cache != nil && c.Cache.Enabled
}

// GetTTLDuration returns cache TTL as time.Duration
func (c *CacheConfig) GetTTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// GetCoalescingDelayDuration returns the coalescing delay as time.Duration
func (c *BufferConfig) GetCoalescingDelayDuration() time.Duration {
	return time.Duration(c.CoalescingDelay) * time.Millisecond
}
