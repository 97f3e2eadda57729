package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	APIBasePath string
	SwaggerHost string

	DBDriver    string
	DatabaseDSN string
	ResetDB     bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	SessionBackend string
	SessionTTL     time.Duration

	MinPasswordLength int
	DefaultRole       string
	HashAlgorithm     string
	PBKDF2Iterations  int
	BcryptCost        int

	CORSAllowedOrigins []string
	PhoneRegion        string

	LogLevel  string
	LogFormat string
}

const (
	// SessionBackendMemory keeps tokens in process memory; they are lost on restart.
	SessionBackendMemory = "memory"
	// SessionBackendRedis shares tokens between processes through Redis.
	SessionBackendRedis = "redis"
)

const defaultDSN = "user:password@tcp(localhost:3306)/school?charset=utf8mb4&parseTime=True&loc=Local"

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		APIBasePath: getEnv("API_BASE_PATH", "/api"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN: getEnv("DATABASE_DSN", getEnv("MYSQL_DSN", defaultDSN)),
		ResetDB:     getEnvBool("RESET_DB", false),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		SessionBackend: getEnv("SESSION_BACKEND", SessionBackendMemory),
		SessionTTL:     getEnvDuration("SESSION_TTL", 0),

		MinPasswordLength: getEnvInt("AUTH_MIN_PASSWORD_LENGTH", 6),
		DefaultRole:       getEnv("AUTH_DEFAULT_ROLE", "admin"),
		HashAlgorithm:     getEnv("PASSWORD_HASH_ALGORITHM", "pbkdf2"),
		PBKDF2Iterations:  getEnvInt("PBKDF2_ITERATIONS", 100_000),
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		PhoneRegion:        getEnv("PHONE_DEFAULT_REGION", "US"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
