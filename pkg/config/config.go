// Package config loads application configuration from yaml files and
// environment variables with sensible defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the application.
type Config struct {
	AppName  string         `mapstructure:"appName"`
	Database DatabaseConfig `mapstructure:"database"`
	YouTube  YouTubeConfig  `mapstructure:"youtube"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
}

// DatabaseConfig holds Postgres connection parameters.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbName"`
	SSLMode  string `mapstructure:"sslMode"`
}

// DSN builds the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// YouTubeConfig holds the Data API key.
type YouTubeConfig struct {
	APIKey string `mapstructure:"apiKey"`
}

// GeminiConfig holds the Gemini API key and model name.
type GeminiConfig struct {
	APIKey string `mapstructure:"apiKey"`
	Model  string `mapstructure:"model"`
}

// IngestConfig tunes playlist batch processing.
type IngestConfig struct {
	BatchSize         int     `mapstructure:"batchSize"`
	PauseSeconds      float64 `mapstructure:"pauseSeconds"`
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond"`
}

// Load reads configuration from configPath/configName.yaml, falling back to
// environment variables (SERMONSCRIBE_DATABASE_HOST etc.) and defaults when
// the file is absent.
func Load(configPath, configName string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("sermonscribe")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("appName", "sermonscribe")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbName", "sermonscribe")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("ingest.batchSize", 5)
	v.SetDefault("ingest.pauseSeconds", 2)
	v.SetDefault("ingest.requestsPerSecond", 2)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Missing file is fine; defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
