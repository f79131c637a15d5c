package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	// Media host (Cloudinary-style unsigned upload). Empty cloud name or
	// preset means uploads are not configured and photo publishes fail
	// with a configuration error.
	MediaCloudName    string
	MediaUploadPreset string
	MediaEndpoint     string
	UploadTimeout     time.Duration

	TransactionFee float64

	// Classifier selection: "table" (default) or "remote".
	Classifier    string
	ClassifierURL string
	ClassifyDelay time.Duration
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment")
	}

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		DBDSN:             getEnv("DB_DSN", "unimart.db"),
		LogFile:           getEnv("LOG_FILE", "./unimart.log"),
		MediaCloudName:    getEnv("MEDIA_CLOUD_NAME", ""),
		MediaUploadPreset: getEnv("MEDIA_UPLOAD_PRESET", ""),
		MediaEndpoint:     getEnv("MEDIA_ENDPOINT", "https://api.cloudinary.com/v1_1"),
		UploadTimeout:     getEnvDuration("UPLOAD_TIMEOUT", 30*time.Second),
		TransactionFee:    getEnvFloat("TRANSACTION_FEE", 5),
		Classifier:        getEnv("CLASSIFIER", "table"),
		ClassifierURL:     getEnv("CLASSIFIER_URL", ""),
		ClassifyDelay:     getEnvDuration("CLASSIFY_DELAY", 1500*time.Millisecond),
	}

	// Upload preset stays out of the log line.
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CLASSIFIER=%s FEE=%.2f media_configured=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.Classifier, cfg.TransactionFee,
		cfg.MediaCloudName != "" && cfg.MediaUploadPreset != "")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
