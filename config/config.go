package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	WebPort             int           `mapstructure:"WEB_PORT"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	HistoryLimit        int           `mapstructure:"HISTORY_LIMIT"`
	MaxSessions         int           `mapstructure:"MAX_SESSIONS"`
	CleanupEnabled      bool          `mapstructure:"CLEANUP_ENABLED"`
	CleanupInterval     time.Duration `mapstructure:"CLEANUP_INTERVAL"`
	SessionRetentionAge time.Duration `mapstructure:"SESSION_RETENTION_AGE"`
	CORSAllowedOrigins  []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

func Load(logger *zap.Logger) *Config {
	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")        // For running locally
	viper.AddConfigPath("../")      // For running from docker subdir
	viper.AddConfigPath("./config") // Common config folder
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("WEB_PORT", 3001)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HISTORY_LIMIT", 50)
	viper.SetDefault("MAX_SESSIONS", 1024)
	viper.SetDefault("CLEANUP_ENABLED", true)
	viper.SetDefault("CLEANUP_INTERVAL", 1)
	viper.SetDefault("SESSION_RETENTION_AGE", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			// Fallback if logger not available (should not happen in practice)
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Guard against nonsensical values that would break the session store
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = 50
	}
	if config.MaxSessions <= 0 {
		config.MaxSessions = 1024
	}

	// Convert hours to proper time.Duration
	config.CleanupInterval = config.CleanupInterval * time.Hour
	config.SessionRetentionAge = config.SessionRetentionAge * time.Hour

	return &config
}
