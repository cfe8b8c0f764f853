package configs

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	JWTSecret string

	UserServiceURL    string
	InquiryServiceURL string
	FileServiceURL    string

	RedisAddr     string
	RedisPassword string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")

	UserServiceURL = GetEnv("USER_SERVICE_URL", "http://user:8080")
	InquiryServiceURL = GetEnv("INQUIRY_SERVICE_URL", "http://inquiry:8080")
	FileServiceURL = GetEnv("FILE_SERVICE_URL", "http://file:8080")

	RedisAddr = GetEnv("REDIS_ADDR", "localhost:6379")
	RedisPassword = GetEnv("REDIS_PASSWORD")

	if JWTSecret == "" {
		logrus.Warn("JWT_SECRET is not set; local token sanity check disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
