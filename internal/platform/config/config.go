package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	MongoURI    string
	MongoDBName string

	AllowedOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LoginMaxAttempts int
	LoginWindow      time.Duration
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:          getEnv("PORT", "8080"),
		JWTKey:           []byte(getEnv("JWT_SECRET", "your_jwt_secret")),
		JWTExp:           time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 7*24)) * time.Hour,
		MongoURI:         getEnv("CONNECTION_URI", "mongodb://localhost:27017"),
		MongoDBName:      getEnv("MONGO_DB_NAME", "cfDB"),
		AllowedOrigins:   getEnvAsList("CORS_ALLOWED_ORIGINS", "http://localhost:8080,http://localhost:1234,http://localhost:4200"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 10),
		LoginWindow:      time.Duration(getEnvAsInt("LOGIN_WINDOW_SECONDS", 900)) * time.Second,
	}
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

func getEnvAsList(key, fallback string) []string {
	valueStr := getEnv(key, fallback)
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
