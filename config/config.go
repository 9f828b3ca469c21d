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
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking policy.
	InitialAppointmentStatus string `mapstructure:"INITIAL_APPOINTMENT_STATUS"`
	StylistApprovalRequired  bool   `mapstructure:"STYLIST_APPROVAL_REQUIRED"`
	SlotConflictScope        string `mapstructure:"SLOT_CONFLICT_SCOPE"`
	GoingFastRemaining       int    `mapstructure:"GOING_FAST_REMAINING"`
	ReminderLeadMinutes      int    `mapstructure:"REMINDER_LEAD_MINUTES"`

	// qPay invoicing provider.
	QPayBaseURL      string `mapstructure:"QPAY_BASE_URL"`
	QPayClientID     string `mapstructure:"QPAY_CLIENT_ID"`
	QPayClientSecret string `mapstructure:"QPAY_CLIENT_SECRET"`
	QPayInvoiceCode  string `mapstructure:"QPAY_INVOICE_CODE"`
	QPayCallbackURL  string `mapstructure:"QPAY_CALLBACK_URL"`
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
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "trimly")
	viper.SetDefault("INITIAL_APPOINTMENT_STATUS", "pending")
	viper.SetDefault("STYLIST_APPROVAL_REQUIRED", true)
	viper.SetDefault("SLOT_CONFLICT_SCOPE", "perStylist")
	viper.SetDefault("GOING_FAST_REMAINING", 2)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 30)
	viper.SetDefault("QPAY_BASE_URL", "https://merchant.qpay.mn/v2")
	viper.SetDefault("QPAY_INVOICE_CODE", "TRIMLY_INVOICE")

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
