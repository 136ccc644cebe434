package jira

import (
	"fmt"
)

// CacheType selects the reference-cache backend.
type CacheType string

const (
	// CacheTypeMemory keeps the reference cache in process memory.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS shares the reference cache through a NATS KV bucket.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone disables reference caching.
	CacheTypeNone CacheType = "none"
)

// CacheConfig configures the reference-cache backend.
type CacheConfig struct {
	// Type is the cache backend type.
	Type CacheType

	// Memory configures the in-memory backend.
	Memory *MemoryCacheConfig

	// NATS configures the NATS KV backend.
	NATS *NATSKVConfig
}

// MemoryCacheConfig configures the in-memory backend.
type MemoryCacheConfig struct {
	// MaxSize is the maximum number of entries. Zero means unbounded.
	MaxSize int
}

const defaultCacheSize = 128

// DefaultCacheConfig returns the in-memory default used when a Config leaves
// Cache nil.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:   CacheTypeMemory,
		Memory: &MemoryCacheConfig{MaxSize: defaultCacheSize},
	}
}

// NewCacheFromConfig creates a cache backend from configuration.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory:
		maxSize := defaultCacheSize
		if config.Memory != nil {
			maxSize = config.Memory.MaxSize
		}

		return NewMemoryCache(maxSize), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		return NewNATSKVCache(config.NATS)

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCache, config.Type)
	}
}
