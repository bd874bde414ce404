package config

import (
	"main/utils"
	"time"
)

type RedisConfig struct {
	URL         string
	NotifiedTTL time.Duration
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:         utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
		NotifiedTTL: utils.GetEnvAsDuration("REMINDER_NOTIFIED_TTL", 24*time.Hour),
	}
}
