package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	// Remote clinic API (the system of record for appointments, slots,
	// content, auth). This service never owns persistent state itself.
	ClinicAPIBaseURL string
	ClinicAPITimeout time.Duration

	// Session store
	RedisAddr       string
	RedisPassword   string
	RedisTLS        bool
	SessionSecret   string
	SessionTTL      time.Duration
	UseMemoryStore  bool
	LoginRatePerSec float64
	LoginBurst      int

	// Content cache
	ContentRefreshInterval time.Duration

	// Notifications
	Notifier          string // "log", "email", "sms", "multi"
	SMSProvider       string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	EmailProvider     string // "sendgrid" or "ses"
	SESFromEmail      string
	SESFromName       string

	// AWS (only needed when EmailProvider is "ses")
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		ClinicAPIBaseURL: getEnv("CLINIC_API_BASE_URL", "https://api.drganeshcs.com/api"),
		ClinicAPITimeout: getEnvAsDuration("CLINIC_API_TIMEOUT", 20*time.Second),

		RedisAddr:       getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisTLS:        getEnvAsBool("REDIS_TLS", false),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		UseMemoryStore:  getEnvAsBool("USE_MEMORY_STORE", false),
		LoginRatePerSec: getEnvAsFloat("LOGIN_RATE_PER_SEC", 1),
		LoginBurst:      getEnvAsInt("LOGIN_BURST", 5),

		ContentRefreshInterval: getEnvAsDuration("CONTENT_REFRESH_INTERVAL", time.Minute),

		Notifier:          strings.ToLower(strings.TrimSpace(getEnv("NOTIFIER", "log"))),
		SMSProvider:       strings.ToLower(strings.TrimSpace(getEnv("SMS_PROVIDER", "twilio"))),
		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:  getEnv("TWILIO_FROM_NUMBER", ""),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Dr. Ganesh Eye Clinic"),
		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "sendgrid"))),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "Dr. Ganesh Eye Clinic"),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
