// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"yogaday/local-app/internal/model"
)

// EnvPrefix is prepended to every configuration key read from the environment,
// e.g. YOGADAY_DATABASE_TYPE.
const EnvPrefix = "YOGADAY"

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = "./data/config.json"
)

// Defaults returns the configuration used when no file or override is present.
func Defaults() *model.Config {
	return &model.Config{
		DatabaseType: "sqlite",
		DatabaseDir:  "./data",
		DatabaseFile: "yogaday.db",
		LogFolder:    "./logs",
		CommandLog:   "commands.log",
		ErrorLog:     "errors.log",
		InfoLog:      "info.log",
		LogLevel:     "info",
		HistoryFile:  "./data/history.txt",
		HTTPAddr:     "127.0.0.1:8080",
		ExportFile:   "yoga-data.json",
		ExportFormat: "json",
	}
}

// ConfigLoad loads the configuration from the default path.
func ConfigLoad() error {
	_, err := ConfigLoadFile(configPath)
	return err
}

// ConfigLoadFile loads the configuration from path, creating the file with
// defaults when it does not exist. Values from a .env file and YOGADAY_*
// environment variables override the file.
func ConfigLoadFile(path string) (*model.Config, error) {
	// A missing .env is the normal case
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	// Ensure the data directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if the config file exists, if not create a default one
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := ConfigSave(path, Defaults()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &model.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	currentConfig = cfg
	configPath = path
	return cfg, nil
}

// setDefaults registers every key so that environment overrides apply to keys
// missing from the file as well.
func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("database_type", d.DatabaseType)
	v.SetDefault("database_dir", d.DatabaseDir)
	v.SetDefault("database_file", d.DatabaseFile)
	v.SetDefault("database_dsn", d.DatabaseDSN)
	v.SetDefault("log_folder", d.LogFolder)
	v.SetDefault("command_log", d.CommandLog)
	v.SetDefault("error_log", d.ErrorLog)
	v.SetDefault("info_log", d.InfoLog)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("history_file", d.HistoryFile)
	v.SetDefault("http_addr", d.HTTPAddr)
	v.SetDefault("export_file", d.ExportFile)
	v.SetDefault("export_format", d.ExportFormat)
}

// ConfigSave saves the provided configuration to the JSON file.
func ConfigSave(path string, cfg *model.Config) error {
	// Marshal the config to JSON
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write the JSON data to the config file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	return currentConfig
}

// ConfigPath returns the path of the last loaded configuration file.
func ConfigPath() string {
	return configPath
}
