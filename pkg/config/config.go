package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Upstream UpstreamConfig
	Redis    RedisConfig
	Session  SessionConfig
	Payment  PaymentConfig
	Notice   NoticeConfig
	Identity IdentityConfig
	Mail     MailConfig
	CORS     CORSConfig
	Log      LogConfig
}

// UpstreamConfig points the portal at the admissions REST API.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig governs the signed session cookie and durable storage lifetime.
type SessionConfig struct {
	CookieName   string
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

// PaymentConfig tunes the mock payment flow.
type PaymentConfig struct {
	ProcessingDelay time.Duration
}

// NoticeConfig controls auto-dismiss timing for success notices.
type NoticeConfig struct {
	DismissAfter time.Duration
}

// IdentityConfig configures the external identity provider used for password resets.
type IdentityConfig struct {
	CredentialsFile string
	WebAPIKey       string
	ContinueURL     string
}

// MailConfig configures reset-link delivery.
type MailConfig struct {
	SendGridKey string
	FromName    string
	FromEmail   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 15*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		CookieName:   v.GetString("SESSION_COOKIE_NAME"),
		Secret:       v.GetString("SESSION_SECRET"),
		TTL:          parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
	}

	cfg.Payment = PaymentConfig{
		ProcessingDelay: parseDuration(v.GetString("PAYMENT_PROCESSING_DELAY"), 1500*time.Millisecond),
	}

	cfg.Notice = NoticeConfig{
		DismissAfter: parseDuration(v.GetString("NOTICE_DISMISS_AFTER"), 2*time.Second),
	}

	cfg.Identity = IdentityConfig{
		CredentialsFile: v.GetString("IDENTITY_CREDENTIALS_FILE"),
		WebAPIKey:       v.GetString("IDENTITY_WEB_API_KEY"),
		ContinueURL:     v.GetString("IDENTITY_CONTINUE_URL"),
	}

	cfg.Mail = MailConfig{
		SendGridKey: v.GetString("SENDGRID_API_KEY"),
		FromName:    v.GetString("MAIL_FROM_NAME"),
		FromEmail:   v.GetString("MAIL_FROM_EMAIL"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:8081/api")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_COOKIE_NAME", "portal_session")
	v.SetDefault("SESSION_SECRET", "dev_session_secret")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE_SECURE", false)

	v.SetDefault("PAYMENT_PROCESSING_DELAY", "1500ms")
	v.SetDefault("NOTICE_DISMISS_AFTER", "2s")

	v.SetDefault("IDENTITY_CREDENTIALS_FILE", "")
	v.SetDefault("IDENTITY_WEB_API_KEY", "")
	v.SetDefault("IDENTITY_CONTINUE_URL", "http://localhost:3000/login")

	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM_NAME", "Oakfield Primary Portal")
	v.SetDefault("MAIL_FROM_EMAIL", "noreply@oakfield-primary.example")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
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
