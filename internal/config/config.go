package config

import (
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

// Session backends.
const (
	SessionBackendMemory   = "memory"
	SessionBackendFile     = "file"
	SessionBackendRedis    = "redis"
	SessionBackendDynamoDB = "dynamodb"
)

// Development fallbacks. Production must override both.
const (
	DefaultSessionSecret = "dev-session-secret"
	DefaultCSRFKey       = "01234567890123456789012345678901"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	GASBaseURL string
	GASTimeout time.Duration

	SessionBackend string
	SessionSecret  string
	SessionTTL     time.Duration
	SessionCookie  string
	SessionFile    string
	SessionsTable  string

	RedisURL string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string

	CSRFKey        string
	CSRFSecure     bool
	AllowedOrigins []string
	SwaggerEnabled bool

	// Base URL of the relay the terminal client talks to.
	TunggakanAPIURL string
}

// Load reads the environment (and .env, if present) into a Config.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GAS_BASE_URL", "")
	v.SetDefault("GAS_TIMEOUT", "0s")
	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_SECRET", DefaultSessionSecret)
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("SESSION_COOKIE", "tunggakan_session")
	v.SetDefault("SESSION_FILE", "")
	v.SetDefault("SESSIONS_TABLE", "sessions")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("CSRF_KEY", DefaultCSRFKey)
	v.SetDefault("CSRF_SECURE", false)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("SWAGGER_ENABLED", true)
	v.SetDefault("TUNGGAKAN_API_URL", "http://localhost:8080/api/gas")

	return &Config{
		Port:               v.GetString("PORT"),
		Env:                v.GetString("ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		GASBaseURL:         v.GetString("GAS_BASE_URL"),
		GASTimeout:         v.GetDuration("GAS_TIMEOUT"),
		SessionBackend:     strings.ToLower(v.GetString("SESSION_BACKEND")),
		SessionSecret:      v.GetString("SESSION_SECRET"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		SessionCookie:      v.GetString("SESSION_COOKIE"),
		SessionFile:        v.GetString("SESSION_FILE"),
		SessionsTable:      v.GetString("SESSIONS_TABLE"),
		RedisURL:           v.GetString("REDIS_URL"),
		AWSRegion:          v.GetString("AWS_REGION"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		DynamoDBEndpoint:   v.GetString("DYNAMODB_ENDPOINT"),
		CSRFKey:            v.GetString("CSRF_KEY"),
		CSRFSecure:         v.GetBool("CSRF_SECURE"),
		AllowedOrigins:     splitList(v.GetString("ALLOWED_ORIGINS")),
		SwaggerEnabled:     v.GetBool("SWAGGER_ENABLED"),
		TunggakanAPIURL:    v.GetString("TUNGGAKAN_API_URL"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// InsecureDefaults lists the secret keys still set to their built-in
// development values. Empty keys count as well.
func (c *Config) InsecureDefaults() []string {
	var keys []string
	if c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret {
		keys = append(keys, "SESSION_SECRET")
	}
	if c.CSRFKey == "" || c.CSRFKey == DefaultCSRFKey {
		keys = append(keys, "CSRF_KEY")
	}
	return keys
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
