package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	EmailSender   string
	Password      string // SMTP Password
	SMTPHost      string
	SMTPPort      string
	OperatorEmail string // Receives booking alerts

	RoomsApiURL string // Video rooms provider endpoint
	RoomsApiKey string

	BookingTierLevel int // Minimum plan tier for 1:1 session requests
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
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender:   getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:      getEnv("PASSWORD", "defaultSecret"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		OperatorEmail: getEnv("OPERATOR_EMAIL", "coach@coachly.app"),

		RoomsApiURL: getEnv("ROOMS_API_URL", "https://api.daily.co/v1/rooms"),
		RoomsApiKey: getEnv("ROOMS_API_KEY", "defaultSecret"),

		BookingTierLevel: getEnvInt("BOOKING_TIER_LEVEL", 2),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.RoomsApiKey == "defaultSecret" {
		log.Println("Warning: Using default ROOMS_API_KEY. Session rooms will fail to create.")
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
