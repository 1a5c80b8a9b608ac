package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BlobBackendSQL   = "sql"
	BlobBackendMinIO = "minio"
)

type Server struct {
	Port int
}

type DB struct {
	Driver string
	DSN    string
}

type Storage struct {
	MaxValueSize    int64
	InlinePostLimit int64
	BlobBackend     string
}

type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type Import struct {
	MaxUploadSize int64
}

type Config struct {
	Server  Server
	DB      DB
	Storage Storage
	MinIO   MinIO
	Import  Import
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func LoadDB() DB {
	return DB{
		Driver: getEnv("DB_DRIVER", "sqlite3"),
		DSN:    getEnv("DB_DSN", "stats.db"),
	}
}

func LoadStorage() Storage {
	backend := strings.ToLower(getEnv("BLOB_BACKEND", BlobBackendSQL))
	if backend != BlobBackendMinIO {
		backend = BlobBackendSQL
	}
	return Storage{
		MaxValueSize:    getEnvAsInt64("STORAGE_MAX_VALUE_SIZE", 5*1024*1024),
		InlinePostLimit: getEnvAsInt64("STORAGE_INLINE_POST_LIMIT", 5_000_000),
		BlobBackend:     backend,
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		Bucket:    getEnv("MINIO_BUCKET_NAME", "post-stats"),
		UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		Region:    getEnv("MINIO_REGION", "us-east-1"),
	}
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Config: .env file not found, using environment variables")
	}

	return &Config{
		Server:  Server{Port: getEnvAsInt("SERVER_PORT", 8080)},
		DB:      LoadDB(),
		Storage: LoadStorage(),
		MinIO:   LoadMinIO(),
		Import:  Import{MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 20*1024*1024)},
	}
}
