package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	BucketName    string
	UseSSL        bool
	Region        string
	PublicBaseURL string
}

// Local describes where the device-local durable state lives.
type Local struct {
	Backend   string // "file" or "redis"
	StatePath string
	RedisURL  string
}

type Config struct {
	ServerPort           int
	DB                   DB
	MinIO                MinIO
	Local                Local
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	MaxUploadSize        int64
	LikeMode             string
	LogLevel             slog.Level
	MigrationsPath       string
}

const (
	LikeModeAtomic   = "atomic"
	LikeModeAbsolute = "absolute"
)

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

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func parseLogLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLikeMode(value string) string {
	if strings.EqualFold(value, LikeModeAbsolute) {
		return LikeModeAbsolute
	}
	return LikeModeAtomic
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "voiceunheard"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")
	useSSL := getEnvBool("MINIO_USE_SSL", false)

	scheme := "http"
	if useSSL {
		scheme = "https"
	}

	return MinIO{
		Endpoint:      endpoint,
		AccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName:    getEnv("MINIO_BUCKET_NAME", "evidence"),
		UseSSL:        useSSL,
		Region:        getEnv("MINIO_REGION", "us-east-1"),
		PublicBaseURL: strings.TrimSuffix(getEnv("MINIO_PUBLIC_URL", scheme+"://"+endpoint), "/"),
	}
}

func LoadLocal() Local {
	backend := strings.ToLower(getEnv("LOCAL_STATE_BACKEND", "file"))
	if backend != "redis" {
		backend = "file"
	}

	return Local{
		Backend:   backend,
		StatePath: getEnv("LOCAL_STATE_PATH", "data/device_state.json"),
		RedisURL:  getEnv("LOCAL_REDIS_URL", "redis://localhost:6379/0"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("[Config] .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:           getEnvAsInt("SERVER_PORT", 8080),
		DB:                   LoadDB(),
		MinIO:                LoadMinIO(),
		Local:                LoadLocal(),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "1h"), time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "168h"), 168*time.Hour),
		MaxUploadSize:        parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		LikeMode:             parseLikeMode(getEnv("LIKE_MODE", LikeModeAtomic)),
		LogLevel:             parseLogLevel(getEnv("LOG_LEVEL", "INFO")),
		MigrationsPath:       getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
	}
}
