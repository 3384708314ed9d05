package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBVerbose  bool

	// ✅ Redis Config (draw lock)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ✅ Kafka Config (notification jobs)
	KafkaBrokers           []string
	KafkaNotificationTopic string
	KafkaGroupID           string

	// ✅ SMTP Config
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string

	AppURL      string
	CORSOrigins []string

	DrawMaxAttempts int
	NotifyWorkers   int
	NotifyQueueSize int
	JoinRateLimit   int // join attempts per IP per minute
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBVerbose:  os.Getenv("DB_VERBOSE") == "true",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:           splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaNotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "secret-santa.notifications"),
		KafkaGroupID:           getEnv("KAFKA_GROUP_ID", "secret-santa-notifier"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  getEnv("SMTP_FROM_NAME", "Secret Santa"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),

		AppURL:      getEnv("APP_URL", "http://localhost:5173"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),

		DrawMaxAttempts: getEnvInt("DRAW_MAX_ATTEMPTS", 100),
		NotifyWorkers:   getEnvInt("NOTIFY_WORKERS", 4),
		NotifyQueueSize: getEnvInt("NOTIFY_QUEUE_SIZE", 256),
		JoinRateLimit:   getEnvInt("JOIN_RATE_LIMIT", 20),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
