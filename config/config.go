package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisConversationDB  int    `mapstructure:"REDIS_CONVERSATION_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Gemini configuration.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Conversation loop knobs.
	AgentMaxCycles       int `mapstructure:"AGENT_MAX_CYCLES"`
	AgentTokenBudget     int `mapstructure:"AGENT_TOKEN_BUDGET"`
	ConversationTTLMins  int `mapstructure:"CONVERSATION_TTL_MINUTES"`
	ReminderLeadMinutes  int `mapstructure:"REMINDER_LEAD_MINUTES"`
	ReminderConcurrency  int `mapstructure:"REMINDER_CONCURRENCY"`

	// Slot generation knobs.
	SlotDurationMinutes int `mapstructure:"SLOT_DURATION_MINUTES"`
	SlotBufferMinutes   int `mapstructure:"SLOT_BUFFER_MINUTES"`
	MaxDaysAhead        int `mapstructure:"MAX_DAYS_AHEAD"`
	MatchToleranceMins  int `mapstructure:"MATCH_TOLERANCE_MINUTES"`
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
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "bookingagent")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CONVERSATION_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("AGENT_MAX_CYCLES", 8)
	viper.SetDefault("AGENT_TOKEN_BUDGET", 4000)
	viper.SetDefault("CONVERSATION_TTL_MINUTES", 30)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("REMINDER_CONCURRENCY", 10)
	viper.SetDefault("SLOT_DURATION_MINUTES", 30)
	viper.SetDefault("SLOT_BUFFER_MINUTES", 10)
	viper.SetDefault("MAX_DAYS_AHEAD", 30)
	viper.SetDefault("MATCH_TOLERANCE_MINUTES", 5)

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
