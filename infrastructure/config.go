package infrastructure

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cv-align/domain"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig
	API       APIConfig
	Session   SessionConfig
	Broker    BrokerConfig
	Dashboard DashboardConfig
	LogLevel  string
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Port string
}

// APIConfig points at the CvAlign API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls where credentials are kept
type SessionConfig struct {
	DSN          string
	CookieSecure bool
	MaxAge       time.Duration
}

// BrokerConfig holds RabbitMQ settings; an empty URL disables publishing
type BrokerConfig struct {
	URL   string
	Queue string
}

// DashboardConfig holds recruiter dashboard settings
type DashboardConfig struct {
	ReferenceSkills []string
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("CVALIGN_API_URL", "http://127.0.0.1:8000"), "/"),
		},
		Session: SessionConfig{
			DSN: os.Getenv("DB_DSN"),
		},
		Broker: BrokerConfig{
			URL:   os.Getenv("RABBITMQ_URL"),
			Queue: getEnv("ACTIVITY_QUEUE", "cvalign_activity"),
		},
		Dashboard: DashboardConfig{
			ReferenceSkills: splitList(getEnv("REFERENCE_SKILLS", strings.Join(domain.DefaultReferenceSkills, ","))),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.API.Timeout, err = getDuration("API_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Session.MaxAge, err = getDuration("SESSION_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Session.CookieSecure, err = getBool("COOKIE_SECURE", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
