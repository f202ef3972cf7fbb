package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	MongoTransactions bool          `mapstructure:"MONGO_TRANSACTIONS"`
	Env               string        `mapstructure:"ENV"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTTTL            time.Duration `mapstructure:"JWT_TTL"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB       int    `mapstructure:"REDIS_SESSION_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Chatbot configuration.
	GeminiAPIKey   string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel    string        `mapstructure:"GEMINI_MODEL"`
	LLMTimeout     time.Duration `mapstructure:"LLM_TIMEOUT"`
	LLMMaxAttempts int           `mapstructure:"LLM_MAX_ATTEMPTS"`
	SessionBackend string        `mapstructure:"SESSION_BACKEND"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`

	// Reminders.
	RemindersEnabled bool          `mapstructure:"REMINDERS_ENABLED"`
	ReminderLead     time.Duration `mapstructure:"REMINDER_LEAD"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "curabot")
	viper.SetDefault("MONGO_TRANSACTIONS", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_TTL", 7*24*time.Hour)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("LLM_TIMEOUT", 20*time.Second)
	viper.SetDefault("LLM_MAX_ATTEMPTS", 2)
	viper.SetDefault("SESSION_BACKEND", "memory")
	viper.SetDefault("SESSION_TTL", 30*time.Minute)
	viper.SetDefault("REMINDERS_ENABLED", false)
	viper.SetDefault("REMINDER_LEAD", 24*time.Hour)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
