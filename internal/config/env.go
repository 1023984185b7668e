package config

import (
	"os"
	"strconv"
)

// ApplyEnv overlays JOBTRACKER_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	cfg.App.Port = getEnvInt("JOBTRACKER_PORT", cfg.App.Port)
	cfg.App.DataDir = getEnvString("JOBTRACKER_DATA_DIR", cfg.App.DataDir)
	cfg.App.LogLevel = getEnvString("JOBTRACKER_LOG_LEVEL", cfg.App.LogLevel)

	cfg.Remote.Kind = getEnvString("JOBTRACKER_REMOTE_KIND", cfg.Remote.Kind)
	cfg.Remote.URL = getEnvString("JOBTRACKER_REMOTE_URL", cfg.Remote.URL)
	cfg.Remote.TimeoutSeconds = getEnvInt("JOBTRACKER_REMOTE_TIMEOUT_SECONDS", cfg.Remote.TimeoutSeconds)
	cfg.Remote.Redis.Addr = getEnvString("JOBTRACKER_REDIS_ADDR", cfg.Remote.Redis.Addr)
	cfg.Remote.Redis.Password = getEnvString("JOBTRACKER_REDIS_PASSWORD", cfg.Remote.Redis.Password)
	cfg.Remote.Redis.DB = getEnvInt("JOBTRACKER_REDIS_DB", cfg.Remote.Redis.DB)

	cfg.Events.NATSURL = getEnvString("JOBTRACKER_NATS_URL", cfg.Events.NATSURL)
	cfg.Logos.Enabled = getEnvBool("JOBTRACKER_LOGOS_ENABLED", cfg.Logos.Enabled)
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
