// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Files struct {
		Rules             string `mapstructure:"rules" yaml:"rules"`
		Fallback          string `mapstructure:"fallback" yaml:"fallback"`
		CategoryOverrides string `mapstructure:"category_overrides" yaml:"category_overrides"`
		BillOverrides     string `mapstructure:"bill_overrides" yaml:"bill_overrides"`
	} `mapstructure:"files" yaml:"files"`

	Import struct {
		Account string `mapstructure:"account" yaml:"account"`
	} `mapstructure:"import" yaml:"import"`

	Exclusion struct {
		TransferTypes  []string `mapstructure:"transfer_types" yaml:"transfer_types"`
		PayeePatterns  []string `mapstructure:"payee_patterns" yaml:"payee_patterns"`
		DropZeroAmount bool     `mapstructure:"drop_zero_amount" yaml:"drop_zero_amount"`
	} `mapstructure:"exclusion" yaml:"exclusion"`

	Bills struct {
		// Provider transaction types that indicate a recurring payment
		// instrument, compared case-insensitively.
		RecurringTypes []string `mapstructure:"recurring_types" yaml:"recurring_types"`
	} `mapstructure:"bills" yaml:"bills"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then MONZO_-prefixed environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.monzo-budget")
	v.AddConfigPath(".monzo-budget")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MONZO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Malformed config file is worth surfacing, but defaults and
			// env vars still allow a run.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("files.rules", "rules.yaml")
	v.SetDefault("files.fallback", "fallback.yaml")
	v.SetDefault("files.category_overrides", "category_overrides.yaml")
	v.SetDefault("files.bill_overrides", "bill_overrides.yaml")

	v.SetDefault("import.account", "Current Account")

	v.SetDefault("exclusion.transfer_types", []string{
		"Pot transfer",
		"Account transfer",
	})
	v.SetDefault("exclusion.payee_patterns", []string{
		"pot transfer",
		"transfer to",
		"transfer from",
		"savings pot",
	})
	v.SetDefault("exclusion.drop_zero_amount", true)

	v.SetDefault("bills.recurring_types", []string{
		"Direct Debit",
		"Standing Order",
	})
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Files.Rules == "" {
		return fmt.Errorf("files.rules must not be empty")
	}

	if len(config.Bills.RecurringTypes) == 0 {
		return fmt.Errorf("bills.recurring_types must not be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger matching the Log section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
