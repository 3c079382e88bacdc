package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env               string
	ServerPort        string
	MySQLDSN          string
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	JWTSecret         string
	JWTAlgorithm      string
	JWTExpiresInHours int
}

// Load builds Config from environment with sensible defaults. Outside of
// staging and production a configs/<env>.env file is loaded first, so a local
// run sees the same variables a deployment gets injected.
func Load() *Config {
	env := os.Getenv("ENV")
	if env != "staging" && env != "production" {
		path := filepath.Join("configs", env+".env")
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: no env file at %s, using process environment", path)
		}
	}

	return &Config{
		Env:               env,
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/mailpress?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         getEnv("JWT_SECRET_KEY", "change-me"),
		JWTAlgorithm:      getEnv("JWT_ALGORITHM", "HS256"),
		JWTExpiresInHours: getEnvInt("JWT_EXPIRES_IN_HOURS", 200),
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
