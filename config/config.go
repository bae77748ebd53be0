package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client and the development backend.
type Config struct {
	Environment string

	// Client
	APIBaseURL      string
	APIToken        string
	APITimeout      time.Duration
	StateBackend    string
	StatePath       string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	AutoSaveDelay   time.Duration
	ModuleConfigTTL time.Duration

	// Development backend
	Port               string
	DBUrl              string
	AuthSecret         string
	CORSAllowedOrigins []string
	RateLimit          string
	UploadDir          string
	PublicBaseURL      string
	PublicEventBaseURL string
	Latency            time.Duration
	KafkaBrokers       []string
	KafkaTopic         string

	EmailProvider      string
	EmailFromAddress   string
	EmailFromName      string
	PublishNotifyEmail string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production there may be no .env file; system environment variables are used.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:8080/api"),
		APIToken:           os.Getenv("API_TOKEN"),
		APITimeout:         getDuration("API_TIMEOUT", 0),
		StateBackend:       getEnv("STATE_BACKEND", "file"),
		StatePath:          getEnv("STATE_PATH", ".eventcreator/state.json"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getInt("REDIS_DB", 0),
		AutoSaveDelay:      getDuration("AUTOSAVE_DELAY", 500*time.Millisecond),
		ModuleConfigTTL:    getDuration("MODULE_CONFIG_TTL", time.Hour),
		Port:               getEnv("PORT", "8080"),
		DBUrl:              os.Getenv("DATABASE_URL"),
		AuthSecret:         os.Getenv("AUTH_SECRET"),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		RateLimit:          getEnv("RATE_LIMIT", "100-M"),
		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		PublicEventBaseURL: getEnv("PUBLIC_EVENT_BASE_URL", "https://letshang.co/events"),
		Latency:            getDuration("LATENCY", 0),
		KafkaBrokers:       getList("KAFKA_BROKERS", nil),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "events.published"),
		EmailProvider:      getEnv("EMAIL_PROVIDER", "noop"),
		EmailFromAddress:   os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:      os.Getenv("EMAIL_FROM_NAME"),
		PublishNotifyEmail: os.Getenv("PUBLISH_NOTIFY_EMAIL"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}

	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port)

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, s, def)
		return def
	}
	return v
}

// getDuration accepts Go duration strings ("500ms") or plain milliseconds ("500").
func getDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, s, def)
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
