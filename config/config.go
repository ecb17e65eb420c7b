package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	ListenAddress         string        `mapstructure:"LISTEN_ADDRESS"`
	HospitalServiceURL    string        `mapstructure:"HOSPITAL_SERVICE_URL"`
	TestServiceURL        string        `mapstructure:"TEST_SERVICE_URL"`
	FeedbackServiceURL    string        `mapstructure:"FEEDBACK_SERVICE_URL"`
	DoctorServiceURL      string        `mapstructure:"DOCTOR_SERVICE_URL"`
	GoogleAPIKey          string        `mapstructure:"GOOGLE_API_KEY"`
	ModelName             string        `mapstructure:"MODEL_NAME"`
	FuzzyMatchThreshold   int           `mapstructure:"FUZZY_MATCH_THRESHOLD"`
	MaxToolRounds         int           `mapstructure:"MAX_TOOL_ROUNDS"`
	BackendRequestTimeout time.Duration `mapstructure:"BACKEND_REQUEST_TIMEOUT"`
	LLMRequestTimeout     time.Duration `mapstructure:"LLM_REQUEST_TIMEOUT"`
	HospitalSearchTopN    int           `mapstructure:"HOSPITAL_SEARCH_TOP_N"`
	DoctorSearchTopN      int           `mapstructure:"DOCTOR_SEARCH_TOP_N"`
	LogLevel              string        `mapstructure:"LOG_LEVEL"`
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
	viper.SetDefault("LISTEN_ADDRESS", ":8085")
	viper.SetDefault("HOSPITAL_SERVICE_URL", "")
	viper.SetDefault("TEST_SERVICE_URL", "")
	viper.SetDefault("FEEDBACK_SERVICE_URL", "")
	viper.SetDefault("DOCTOR_SERVICE_URL", "")
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("MODEL_NAME", "gemini-2.0-flash")
	viper.SetDefault("FUZZY_MATCH_THRESHOLD", 80)
	viper.SetDefault("MAX_TOOL_ROUNDS", 8)
	viper.SetDefault("BACKEND_REQUEST_TIMEOUT", 15)
	viper.SetDefault("LLM_REQUEST_TIMEOUT", 120)
	viper.SetDefault("HOSPITAL_SEARCH_TOP_N", 5)
	viper.SetDefault("DOCTOR_SEARCH_TOP_N", 10)
	viper.SetDefault("LOG_LEVEL", "info")

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
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Trailing slashes break path joining against the service URLs downstream.
	config.HospitalServiceURL = strings.TrimRight(strings.TrimSpace(config.HospitalServiceURL), "/")
	config.TestServiceURL = strings.TrimRight(strings.TrimSpace(config.TestServiceURL), "/")
	config.FeedbackServiceURL = strings.TrimRight(strings.TrimSpace(config.FeedbackServiceURL), "/")
	config.DoctorServiceURL = strings.TrimRight(strings.TrimSpace(config.DoctorServiceURL), "/")

	// Convert seconds to proper time.Duration
	config.BackendRequestTimeout = config.BackendRequestTimeout * time.Second
	config.LLMRequestTimeout = config.LLMRequestTimeout * time.Second

	if config.MaxToolRounds < 1 {
		config.MaxToolRounds = 1
	}

	return &config
}

// Validate reports missing required settings. A missing service endpoint or
// API key fails process startup, never a single request.
func (c *Config) Validate() error {
	var missing []string
	if c.HospitalServiceURL == "" {
		missing = append(missing, "HOSPITAL_SERVICE_URL")
	}
	if c.TestServiceURL == "" {
		missing = append(missing, "TEST_SERVICE_URL")
	}
	if c.FeedbackServiceURL == "" {
		missing = append(missing, "FEEDBACK_SERVICE_URL")
	}
	if c.DoctorServiceURL == "" {
		missing = append(missing, "DOCTOR_SERVICE_URL")
	}
	if c.GoogleAPIKey == "" {
		missing = append(missing, "GOOGLE_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required configuration not set: %s", strings.Join(missing, ", "))
	}
	return nil
}
