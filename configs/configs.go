package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type ConfigStruct struct {
	Port                      string
	Env                       string
	DbUrl                     string
	AutoMigrate               bool
	WaitForRedisConnectionSec int
	RedisUrl                  string
	RedisPassword             string
	MongodbDatabaseUrl        string
	MongodbDatabaseName       string
	CorsAllowedOrigins        []string
	SentryDns                 string
	SentryRelease             string
	PrintErrors               bool
	ContentRoot               string
	RateLimitPerMinute        int
}

var configs = ConfigStruct{}

func GetConfigs() ConfigStruct {
	return configs
}

func LoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	configs.Port = getEnv("PORT", "8080")
	configs.Env = getEnv("ENV", "production")
	configs.DbUrl = os.Getenv("POSTGRES_DATABASE_URL")
	configs.AutoMigrate = os.Getenv("AUTO_MIGRATE") == "true"
	configs.RedisUrl = os.Getenv("REDIS_URL")
	configs.RedisPassword = os.Getenv("REDIS_PASSWORD")
	configs.MongodbDatabaseUrl = os.Getenv("MONGODB_DATABASE_URL")
	configs.MongodbDatabaseName = getEnv("MONGODB_DATABASE_NAME", "movie_review")
	configs.WaitForRedisConnectionSec, _ = strconv.Atoi(os.Getenv("WAIT_REDIS_CONNECTION_SEC"))
	configs.CorsAllowedOrigins = splitOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))
	configs.SentryDns = os.Getenv("SENTRY_DNS")
	configs.SentryRelease = os.Getenv("SENTRY_RELEASE")
	configs.PrintErrors = os.Getenv("PRINT_ERRORS") == "true"
	configs.ContentRoot = getEnv("CONTENT_ROOT", ".")
	configs.RateLimitPerMinute, _ = strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "120"))
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitOrigins(value string) []string {
	origins := strings.Split(value, "---")
	result := make([]string, 0, len(origins))
	for i := range origins {
		origin := strings.TrimSpace(origins[i])
		if origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
