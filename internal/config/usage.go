package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

// DefaultFreeLimit is the monthly number of AI requests granted to free plans.
const DefaultFreeLimit = 100

type UsageConfig struct {
	FreeLimit int
}

var (
	usageConfig *UsageConfig
	usageOnce   sync.Once
)

func LoadUsageConfig() *UsageConfig {
	usageOnce.Do(func() {
		usageConfig = &UsageConfig{
			FreeLimit: intEnv("USAGE_FREE_LIMIT", DefaultFreeLimit),
		}
	})
	return usageConfig
}

// intEnv reads a non-negative integer env var, returning def when unset or invalid.
func intEnv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("Warning: invalid %s=%q, defaulting to %d", key, raw, def)
		return def
	}
	return v
}
