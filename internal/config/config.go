package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                int
	UploadDirectory     string
	DatabasePath        string
	ModelPath           string
	ConfigPath          string
	ConfidenceThreshold float64
	MaxUploadSizeMB     int64
	LogDirectory        string
}

func Load() *Config {
	// .env is optional; real environment variables win either way
	_ = godotenv.Load()

	return &Config{
		Port:                getEnvAsInt("PORT", 8000),
		UploadDirectory:     getEnv("UPLOAD_DIR", "uploads"),
		DatabasePath:        getEnv("DB_PATH", filepath.Join("data", "detections.db")),
		ModelPath:           getEnv("MODEL_PATH", filepath.Join("models", "frozen_inference_graph.pb")),
		ConfigPath:          getEnv("CONFIG_PATH", filepath.Join("models", "ssd_mobilenet_v1_coco_2017_11_17.pbtxt")),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.5),
		MaxUploadSizeMB:     int64(getEnvAsInt("MAX_UPLOAD_SIZE_MB", 50)),
		LogDirectory:        getEnv("LOG_DIR", "logs"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
