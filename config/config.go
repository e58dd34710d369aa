package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port    string
	LogMode string
	JWTKey  string

	DBDriver   string // postgres, mysql, sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	ProgressIncrementSeconds int
	DefaultDurationMinutes   int
	DurationSource           string // course, video

	Notifier             string // none, sendgrid, webhook
	SendGridAPIKey       string
	EmailSender          string
	CompletionWebhookURL string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:    getEnv("PORT", "3000"),
		LogMode: getEnv("LOG_MODE", "development"),
		JWTKey:  getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "lms"),
		DBPort:     getEnv("DB_PORT", "5432"),

		ProgressIncrementSeconds: getEnvInt("PROGRESS_INCREMENT_SECONDS", 5),
		DefaultDurationMinutes:   getEnvInt("DEFAULT_DURATION_MINUTES", 30),
		DurationSource:           strings.ToLower(getEnv("DURATION_SOURCE", "course")),

		Notifier:             strings.ToLower(getEnv("NOTIFIER", "none")),
		SendGridAPIKey:       getEnv("SENDGRID_API_KEY", ""),
		EmailSender:          getEnv("EMAIL_SENDER", "no-reply@example.com"),
		CompletionWebhookURL: getEnv("COMPLETION_WEBHOOK_URL", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.DurationSource != "course" && AppConfig.DurationSource != "video" {
		log.Printf("Warning: unknown DURATION_SOURCE %q, falling back to course.", AppConfig.DurationSource)
		AppConfig.DurationSource = "course"
	}
	if AppConfig.ProgressIncrementSeconds <= 0 {
		log.Println("Warning: PROGRESS_INCREMENT_SECONDS must be positive, using 5.")
		AppConfig.ProgressIncrementSeconds = 5
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
