// Package config provides shared configuration utilities.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-level settings shared by the cmd binaries.
type Config struct {
	SSHHost        string
	SSHPort        string
	SSHHostKeyPath string
	SSHDisplayHost string

	WebHost string
	WebPort string

	// RedisURL selects the Redis high-score store when non-empty.
	RedisURL string
	// HighScoreFile is used when RedisURL is empty.
	HighScoreFile string
	// TuningFile optionally overrides game tuning (YAML).
	TuningFile string

	// MaxSessions caps concurrent SSH games. Zero means no cap.
	MaxSessions int

	LogLevel string

	ShutdownTimeout time.Duration
}

// Load reads a .env file if present and builds a Config from the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		SSHHost:        GetEnv("SSH_HOST", "::"),
		SSHPort:        GetEnv("SSH_PORT", "2222"),
		SSHHostKeyPath: GetEnv("SSH_HOST_KEY", "/app/keys/host_key"),
		SSHDisplayHost: GetEnv("SSH_DISPLAY_HOST", "your-server.com"),

		WebHost: GetEnv("WEB_HOST", "0.0.0.0"),
		WebPort: GetEnv("WEB_PORT", "8080"),

		RedisURL:      GetEnv("REDIS_URL", ""),
		HighScoreFile: GetEnv("HIGHSCORE_FILE", "highscore.json"),
		TuningFile:    GetEnv("TUNING_FILE", ""),

		MaxSessions: GetEnvInt("MAX_SESSIONS", 0),

		LogLevel: GetEnv("LOG_LEVEL", "info"),

		ShutdownTimeout: GetEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt returns the integer value of key, or fallback if unset or malformed.
func GetEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// GetEnvDuration parses key with time.ParseDuration ("5s", "250ms").
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
