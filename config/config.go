package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisMailQueueDB int    `mapstructure:"REDIS_MAIL_QUEUE_DB"`

	// Stripe key for wallet top-ups.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// SMTP settings for the mail dispatcher.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
}

// Engine carries the marketplace constants. It is built once at startup and
// passed into each service at construction; nothing reads these through a
// global at call time.
type Engine struct {
	AcceptanceFee   int64
	ConfirmationFee int64
	CancelPenalty   int64

	DailyAcceptanceCap int
	AcceptanceTimeout  time.Duration
	OtpTTL             time.Duration

	TrialJobs int

	// Pricing calculator coefficients.
	RatingCoefficient     float64
	ExperienceCoefficient float64
	MaxMultiplier         float64
	BaseRates             map[string]int64
	DefaultBaseRate       int64
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
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_MAIL_QUEUE_DB", 1)
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "no-reply@fixhub.local")

	viper.SetDefault("ACCEPTANCE_FEE", 30)
	viper.SetDefault("CONFIRMATION_FEE", 20)
	viper.SetDefault("CANCEL_PENALTY", 50)
	viper.SetDefault("DAILY_ACCEPTANCE_CAP", 3)
	viper.SetDefault("ACCEPTANCE_TIMEOUT_MIN", 15)
	viper.SetDefault("OTP_TTL_MIN", 10)
	viper.SetDefault("TRIAL_JOBS", 3)
	viper.SetDefault("RATING_COEFFICIENT", 0.10)
	viper.SetDefault("EXPERIENCE_COEFFICIENT", 0.05)
	viper.SetDefault("MAX_MULTIPLIER", 3.0)
	viper.SetDefault("DEFAULT_BASE_RATE", 400)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// LoadEngine assembles the engine constants from the loaded configuration.
func LoadEngine() Engine {
	rates := map[string]int64{
		"plumbing":    500,
		"electrical":  550,
		"carpentry":   450,
		"painting":    400,
		"appliance":   600,
		"cleaning":    350,
		"pest":        450,
		"other":       400,
	}
	if viper.IsSet("BASE_RATES") {
		custom := viper.GetStringMap("BASE_RATES")
		for k := range custom {
			rates[k] = viper.GetInt64("BASE_RATES." + k)
		}
	}
	return Engine{
		AcceptanceFee:         viper.GetInt64("ACCEPTANCE_FEE"),
		ConfirmationFee:       viper.GetInt64("CONFIRMATION_FEE"),
		CancelPenalty:         viper.GetInt64("CANCEL_PENALTY"),
		DailyAcceptanceCap:    viper.GetInt("DAILY_ACCEPTANCE_CAP"),
		AcceptanceTimeout:     time.Duration(viper.GetInt("ACCEPTANCE_TIMEOUT_MIN")) * time.Minute,
		OtpTTL:                time.Duration(viper.GetInt("OTP_TTL_MIN")) * time.Minute,
		TrialJobs:             viper.GetInt("TRIAL_JOBS"),
		RatingCoefficient:     viper.GetFloat64("RATING_COEFFICIENT"),
		ExperienceCoefficient: viper.GetFloat64("EXPERIENCE_COEFFICIENT"),
		MaxMultiplier:         viper.GetFloat64("MAX_MULTIPLIER"),
		BaseRates:             rates,
		DefaultBaseRate:       viper.GetInt64("DEFAULT_BASE_RATE"),
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
