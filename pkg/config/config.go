package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// Base URL of the remote restaurant backend, e.g. https://api.example.com.
	APIBaseURL string

	// Storage selects the persistent cart store: "file" or "redis".
	Storage    string
	StorageDir string
	RedisAddr  string
	RedisDB    int

	// CartScopePolicy controls what happens when an item from a different
	// restaurant is added to a non-empty cart: "reject" or "replace".
	CartScopePolicy string

	Currency string
}

func Load() Config {
	return Config{
		AppEnv:          getEnv("APP_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:3000"),
		Storage:         getEnv("CART_STORAGE", "file"),
		StorageDir:      getEnv("CART_STORAGE_DIR", ".orderkit"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CartScopePolicy: getEnv("CART_SCOPE_POLICY", "reject"),
		Currency:        getEnv("CURRENCY", "INR"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
