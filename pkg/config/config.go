package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultBackendURL is used when BACKEND_URL is not provided.
const DefaultBackendURL = "http://localhost:5000"

type Config struct {
	Env  string
	Port int

	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
	CORS    CORSConfig
	Log     LogConfig
	Metrics MetricsConfig
	Live    LiveConfig
	Export  ExportConfig
}

// BackendConfig points the portal at the catalog API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig describes how the session blob written by the login service is located and verified.
type SessionConfig struct {
	CookieName string
	KeyPrefix  string
	JWTSecret  string
	LoginURL   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// LiveConfig gates the websocket listing session.
type LiveConfig struct {
	Enabled        bool
	OriginPatterns []string
}

// ExportConfig gates CSV/PDF export of listings.
type ExportConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Backend = BackendConfig{
		BaseURL: normalizeBaseURL(v.GetString("BACKEND_URL")),
		Timeout: parseDuration(v.GetString("BACKEND_TIMEOUT"), 10*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		CookieName: v.GetString("SESSION_COOKIE"),
		KeyPrefix:  v.GetString("SESSION_KEY_PREFIX"),
		JWTSecret:  v.GetString("JWT_SECRET"),
		LoginURL:   v.GetString("LOGIN_URL"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	cfg.Live = LiveConfig{
		Enabled:        v.GetBool("ENABLE_LIVE"),
		OriginPatterns: splitAndTrim(v.GetString("LIVE_ALLOWED_ORIGINS")),
	}

	cfg.Export = ExportConfig{Enabled: v.GetBool("ENABLE_EXPORT")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3000)

	v.SetDefault("BACKEND_URL", DefaultBackendURL)
	v.SetDefault("BACKEND_TIMEOUT", "10s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_COOKIE", "portal_session")
	v.SetDefault("SESSION_KEY_PREFIX", "session:")
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("LOGIN_URL", "/login")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("ENABLE_LIVE", true)
	v.SetDefault("LIVE_ALLOWED_ORIGINS", "")
	v.SetDefault("ENABLE_EXPORT", true)
}

func normalizeBaseURL(raw string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return DefaultBackendURL
	}
	return trimmed
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
