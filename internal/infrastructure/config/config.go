package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion       string
	LogLevel         string
	MetricsNamespace string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL
	PostgresDSN     string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxLife   time.Duration
	DBRunMigrations bool

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheEnabled  bool
	CacheTTL      time.Duration
	JobTTL        time.Duration

	// Event bus
	AMQPURL       string
	EventExchange string

	// SMS gateway
	SMSBaseURL    string
	SMSAccountSID string
	SMSAuthToken  string
	SMSFromNumber string
	SMSTimeout    time.Duration

	// Email
	EmailTransport string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	MailFrom       string
	MailDomain     string

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string

	// Accounts
	BcryptCost int

	// Notification cycle
	CycleInterval  time.Duration
	CycleAsync     bool
	CycleWorkers   int
	CycleQueueSize int
	CycleTimeout   time.Duration
	WatermarkPrune bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:       getEnv("APP_VERSION", "1.0.0"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "flightwatch"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresDSN:     getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=flights port=5432 sslmode=disable"),
		DBMaxOpenConns:  getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:  getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLife:   getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBRunMigrations: getEnvAsBool("DB_AUTO_MIGRATE", true),

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "flightwatch"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheEnabled:  getEnvAsBool("CACHE_ENABLED", false),
		CacheTTL:      getEnvAsDuration("CACHE_TTL", 30*time.Second),
		JobTTL:        getEnvAsDuration("CYCLE_JOB_TTL", time.Hour),

		AMQPURL:       getEnv("AMQP_URL", ""),
		EventExchange: getEnv("EVENT_EXCHANGE", "flight-status-notifications"),

		SMSBaseURL:    getEnv("SMS_BASE_URL", "https://api.twilio.com"),
		SMSAccountSID: getEnv("SMS_ACCOUNT_SID", ""),
		SMSAuthToken:  getEnv("SMS_AUTH_TOKEN", ""),
		SMSFromNumber: getEnv("SMS_FROM_NUMBER", ""),
		SMSTimeout:    getEnvAsDuration("SMS_TIMEOUT", 30*time.Second),

		EmailTransport: strings.ToLower(getEnv("EMAIL_TRANSPORT", "smtp")),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		MailFrom:       getEnv("SMTP_FROM", ""),
		MailDomain:     getEnv("SMTP_DOMAIN", "localhost"),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		BcryptCost: getEnvAsInt("BCRYPT_COST", 10),

		CycleInterval:  getEnvAsDuration("CYCLE_INTERVAL", 0),
		CycleAsync:     getEnvAsBool("CYCLE_ASYNC", false),
		CycleWorkers:   getEnvAsInt("CYCLE_WORKERS", 4),
		CycleQueueSize: getEnvAsInt("CYCLE_QUEUE_SIZE", 64),
		CycleTimeout:   getEnvAsDuration("CYCLE_TIMEOUT", 2*time.Minute),
		WatermarkPrune: getEnvAsBool("WATERMARK_PRUNE", false),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("90s", "5m") or a bare number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
