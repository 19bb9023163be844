package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
// It is built once at process start and handed to the components that need it;
// nothing reads the environment after Load returns.
type Config struct {
	ServerPort   string
	MySQLDSN     string
	AuthMySQLDSN string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	JWTSecret    string
	StaticDir    string
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults. Each binary
// passes its own default port; SERVER_PORT overrides it. The JWT secret must
// be identical on the auth and main services for token verification to work
// across them; deployments override the default on both.
func Load(defaultPort string) *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", defaultPort),
		MySQLDSN:     getEnv("MYSQL_DSN", "root:password@tcp(localhost:3306)/perpustakaan?charset=utf8mb4&parseTime=True&loc=Local"),
		AuthMySQLDSN: getEnv("AUTH_MYSQL_DSN", "root:password@tcp(localhost:3306)/perpustakaan_auth?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		StaticDir:    getEnv("STATIC_DIR", "public"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
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
