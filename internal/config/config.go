package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Discord Bot, disabled when empty
	DiscordToken string

	// Web Server
	WebBind            string
	CORSAllowedOrigins []string
	RateLimitPerMinute int

	// Result cache, in memory when RedisAddr is empty
	RedisAddr string
	CacheTTL  time.Duration
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:       os.Getenv("DISCORD_TOKEN"),
		WebBind:            getEnvDefault("WEB_BIND", "0.0.0.0:3000"),
		CORSAllowedOrigins: splitList(getEnvDefault("CORS_ALLOWED_ORIGINS", "*")),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
	}

	var err error
	cfg.RateLimitPerMinute, err = strconv.Atoi(getEnvDefault("RATE_LIMIT_PER_MINUTE", "60"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE: %w", err)
	}
	if cfg.RateLimitPerMinute <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}

	cfg.CacheTTL, err = time.ParseDuration(getEnvDefault("CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("CACHE_TTL: %w", err)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must not be negative")
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS is empty")
	}

	return cfg, nil
}

// BotEnabled reports whether a Discord token was configured.
func (c *Config) BotEnabled() bool {
	return c.DiscordToken != ""
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
