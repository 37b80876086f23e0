package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"ENV"`
	JWTSecret string `mapstructure:"JWT_SECRET"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`

	// Mongo configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB     int    `mapstructure:"REDIS_AUTH_DB"`
	RedisOTPDB      int    `mapstructure:"REDIS_OTP_DB"`
	RedisChatCtxDB  int    `mapstructure:"REDIS_CHAT_CTX_DB"`
	RedisReminderDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Gemini API key for intent extraction. Empty disables the LLM path and
	// the assistant falls back to the rule-based parser.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Firebase service account for FCM pushes.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Booking policy. The recommendation scores and search bounds are tuning
	// values, not contracts; they are exposed here so deployments can adjust
	// them without a rebuild.
	RecommendationCap   int     `mapstructure:"RECOMMENDATION_CAP"`
	RecommendShiftStep  int     `mapstructure:"RECOMMEND_SHIFT_STEP_MIN"`
	RecommendShiftLimit int     `mapstructure:"RECOMMEND_SHIFT_HORIZON_MIN"`
	RecommendRoomScore  float64 `mapstructure:"RECOMMEND_ROOM_SCORE"`
	ProactiveScore      float64 `mapstructure:"RECOMMEND_PROACTIVE_SCORE"`
	FreeDayScanDays     int     `mapstructure:"RECOMMEND_FREE_DAY_SCAN_DAYS"`
	DayStartMinute      int     `mapstructure:"DAY_START_MINUTE"`
	DayEndMinute        int     `mapstructure:"DAY_END_MINUTE"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "campuspilot")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_OTP_DB", 2)
	viper.SetDefault("REDIS_CHAT_CTX_DB", 3)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 4)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("RECOMMENDATION_CAP", 3)
	viper.SetDefault("RECOMMEND_SHIFT_STEP_MIN", 30)
	viper.SetDefault("RECOMMEND_SHIFT_HORIZON_MIN", 180)
	viper.SetDefault("RECOMMEND_ROOM_SCORE", 0.7)
	viper.SetDefault("RECOMMEND_PROACTIVE_SCORE", 0.4)
	viper.SetDefault("RECOMMEND_FREE_DAY_SCAN_DAYS", 14)
	viper.SetDefault("DAY_START_MINUTE", 480) // 08:00
	viper.SetDefault("DAY_END_MINUTE", 1320)  // 22:00

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
