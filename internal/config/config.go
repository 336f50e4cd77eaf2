package config

import (
	"os"
	"strings"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port           string
	Environment    string
	MongoURI       string
	MongoDB        string
	RedisAddr      string
	RedisPassword  string
	SecretKey      string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		Environment:   getenv("ENVIRONMENT", "development"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "volunteerNetwork"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		SecretKey:     getenv("SECRET_KEY", ""),
		TokenTTL:      getenvDuration("TOKEN_TTL", 365*24*time.Hour),
		AllowedOrigins: getenvList("ALLOWED_ORIGINS",
			"http://localhost:5173,http://localhost:3000"),
	}
}

// Production reports whether the service runs in production mode, which
// switches cookie attributes (Secure, SameSite=None) and the log encoder.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getenvList(key, fallback string) []string {
	v := getenv(key, fallback)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
