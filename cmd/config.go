package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const EnvProduction = "production"

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	NATSURL           string
	NATSSubjectPrefix string

	StatsSchedule    string
	MetricsNamespace string
}

// LoadConfig reads the optional .env file and then the environment.
// Variables already set in the environment win over the file.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Default().Warn("Failed to load .env file, using environment only", "error", err)
	}

	return Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "orders"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		NATSURL:           getEnv("NATS_URL", ""),
		NATSSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "orders"),

		StatsSchedule:    getEnv("STATS_SCHEDULE", "*/30 * * * * *"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "ordering"),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
