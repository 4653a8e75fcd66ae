package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Gateway   GatewayConfig
	Messaging MessagingConfig
	Engine    EngineConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host          string
	Port          int
	Email         string
	Password      string
	SenderName    string
	OperatorEmail string
}

type GatewayConfig struct {
	MidtransServerKey string
	Production        bool
}

type MessagingConfig struct {
	BaseURL string
	APIKey  string
}

// EngineConfig carries the batch-engine knobs. Services receive it at
// construction and never read the environment themselves.
type EngineConfig struct {
	PaymentPacing time.Duration
	MessagePacing time.Duration
	LockTTL       time.Duration

	ReconcileCron string
	DispatchCron  string
	ScoreCron     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:          getEnv("SMTP_HOST", ""),
			Port:          getEnvAsInt("SMTP_PORT", 587),
			Email:         getEnv("SMTP_EMAIL", ""),
			Password:      getEnv("SMTP_PASSWORD", ""),
			SenderName:    getEnv("SMTP_SENDER_NAME", "ChargeFlow"),
			OperatorEmail: getEnv("OPERATOR_EMAIL", ""),
		},
		Gateway: GatewayConfig{
			MidtransServerKey: getEnv("MIDTRANS_SERVER_KEY", ""),
			Production:        getEnv("MIDTRANS_ENV", "sandbox") == "production",
		},
		Messaging: MessagingConfig{
			BaseURL: getEnv("EVOLUTION_BASE_URL", "http://localhost:8080"),
			APIKey:  getEnv("EVOLUTION_API_KEY", ""),
		},
		Engine: EngineConfig{
			PaymentPacing: time.Duration(getEnvAsInt("PAYMENT_PACING_MS", 2000)) * time.Millisecond,
			MessagePacing: time.Duration(getEnvAsInt("MESSAGE_PACING_MS", 1000)) * time.Millisecond,
			LockTTL:       time.Duration(getEnvAsInt("BATCH_LOCK_TTL_SEC", 600)) * time.Second,
			ReconcileCron: getEnv("RECONCILE_CRON", "*/5 * * * *"),
			DispatchCron:  getEnv("DISPATCH_CRON", "* * * * *"),
			ScoreCron:     getEnv("SCORE_CRON", "0 3 * * *"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
