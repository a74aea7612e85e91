package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RefreshQueueName string
	RefreshInterval  time.Duration
	RankCacheTTL     time.Duration

	CodeforcesBaseURL string
	VjudgeBaseURL     string
	JudgeHTTPTimeout  time.Duration

	DefaultAdminUsername string
	DefaultAdminPassword string
	DefaultPasskey       string

	LogLevel string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:          getEnv("API_PORT", "8080"),
		JWTKey:           []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:           time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 12)) * time.Hour,
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "user"),
		DBPassword:       getEnv("DB_PASSWORD", "password"),
		DBName:           getEnv("DB_NAME", "club_tracker_db"),
		DBSslMode:        getEnv("DB_SSLMODE", "disable"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		RefreshQueueName: getEnv("REFRESH_QUEUE_NAME", "handle_refresh_queue"),
		RefreshInterval:  time.Duration(getEnvAsInt("REFRESH_INTERVAL_HOURS", 24)) * time.Hour,
		RankCacheTTL:     time.Duration(getEnvAsInt("RANK_CACHE_TTL_MINUTES", 10)) * time.Minute,

		CodeforcesBaseURL: getEnv("CODEFORCES_API_URL", "https://codeforces.com/api"),
		VjudgeBaseURL:     getEnv("VJUDGE_API_URL", "https://vjudge.net"),
		JudgeHTTPTimeout:  time.Duration(getEnvAsInt("JUDGE_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,

		DefaultAdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin"),
		DefaultPasskey:       getEnv("DEFAULT_PASSKEY", "sgipc"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
