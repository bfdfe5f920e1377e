package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppHost  string
	HTTPPort string
	AppEnv   string
	LogLevel string

	// Shared-password roles. Both must be set (and differ) for login to work.
	PassTI    string
	PassJefes string

	// SessionSecret signs the session cookie token. Login is disabled
	// without it.
	SessionSecret string

	// Power BI embed URLs handed to the front end, one per role.
	ReportURLTI    string
	ReportURLJefes string

	// OpenAIAPIKey enables POST /ai/insight.
	OpenAIAPIKey string
	OpenAIModel  string
	// LLMTimeoutSec bounds the insight model call (the upstream has no
	// timeout of its own).
	LLMTimeoutSec int

	// BraveAPIKey enables GET /web/search and the insight web-snippet pass.
	BraveAPIKey string
	SearchLang  string

	// CORSOrigins — comma-separated allowed origins for the browser client.
	CORSOrigins []string

	// Kafka is optional: when brokers are empty the producer is a no-op.
	KafkaBrokers    []string
	KafkaTopicEvent string

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Database string
		SSLMode  string
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		AppHost:  getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort: firstEnv("APP_PORT", "HTTP_PORT", "8094"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		PassTI:        os.Getenv("PASS_TI"),
		PassJefes:     os.Getenv("PASS_JEFES"),
		SessionSecret: os.Getenv("SESSION_SECRET"),

		ReportURLTI:    os.Getenv("REPORT_URL_TI"),
		ReportURLJefes: os.Getenv("REPORT_URL_JEFES"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-5-mini"),
		LLMTimeoutSec: getEnvInt("LLM_TIMEOUT", 120),

		BraveAPIKey: os.Getenv("BRAVE_SEARCH_API_KEY"),
		SearchLang:  getEnv("SEARCH_LANG", "es"),

		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopicEvent: getEnv("KAFKA_TOPIC_EVENTS", "dashboard.events"),
	}
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.Database = getEnv("DB_DATABASE", "ti_dashboard")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	return cfg, nil
}

// Validate checks what must hold at startup. Provider credentials (OpenAI,
// Brave, passwords) are checked by their routes at call time instead, so a
// missing key only disables that route.
func (c *Config) Validate() error {
	if c.DB.Host == "" || c.DB.Database == "" {
		return errors.New("config: DB_HOST and DB_DATABASE are required")
	}
	if c.AppEnv == "production" && c.DB.Password == "" {
		return errors.New("config: in production DB_PASSWORD is required")
	}
	if c.PassTI != "" && c.PassTI == c.PassJefes {
		return errors.New("config: PASS_TI and PASS_JEFES must differ")
	}
	return nil
}

// AuthConfigured reports whether login can work at all.
func (c *Config) AuthConfigured() bool {
	return c.PassTI != "" && c.PassJefes != "" && c.SessionSecret != ""
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

func (c *Config) DatabaseURL() string {
	pass := url.QueryEscape(c.DB.Password)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DB.User, pass, c.DB.Host, c.DB.Port, c.DB.Database, c.DB.SSLMode)
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

func splitList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
