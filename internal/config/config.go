package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSSLMode          string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	GinMode            string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "collabuser"),
		DBPassword:         getEnv("DB_PASSWORD", "collabpassword"),
		DBName:             getEnv("DB_NAME", "team_collab"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", "default-access-secret-change-me"),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", "default-refresh-secret-change-me"),
		AccessTokenTTL:     getEnvMinutes("ACCESS_TOKEN_TTL_MINUTES", 15),
		RefreshTokenTTL:    getEnvMinutes("REFRESH_TOKEN_TTL_MINUTES", 7*24*60),
		GinMode:            getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvMinutes(key string, defaultMinutes int) time.Duration {
	value := os.Getenv(key)
	if value != "" {
		if minutes, err := strconv.Atoi(value); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return time.Duration(defaultMinutes) * time.Minute
}
