package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all environment-driven settings for the server.
type Config struct {
	MongoURI  string
	MongoDB   string
	Port      string
	JWTSecret string
	JWTExpiry string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioServiceSID string

	AWSAccessKey    string
	AWSSecretKey    string
	AWSBucketRegion string
	AWSBucketName   string
}

// Load reads configuration from the environment, loading a .env file first
// when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}

	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "jeff"),
		Port:      getEnv("PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", "default-secret-key-change-in-production"),
		JWTExpiry: getEnv("JWT_EXPIRY", "24h"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioServiceSID: os.Getenv("TWILIO_SERVICE_SID"),

		AWSAccessKey:    os.Getenv("AWS_ACCESS_KEY"),
		AWSSecretKey:    os.Getenv("AWS_SECRET_KEY"),
		AWSBucketRegion: os.Getenv("AWS_BUCKET_REGION"),
		AWSBucketName:   os.Getenv("AWS_BUCKET_NAME"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
