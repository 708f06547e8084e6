package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Settings struct {
	ModelPath      string
	EncodersPath   string
	ColumnsPath    string
	DataPath       string
	HTTPPort       int
	MetricsPort    int
	RequestTimeout time.Duration
}

type ConfigFile struct {
	Artifacts struct {
		Model    string `yaml:"model"`
		Encoders string `yaml:"encoders"`
		Columns  string `yaml:"columns"`
	} `yaml:"artifacts"`

	Server struct {
		Port           int    `yaml:"port"`
		MetricsPort    int    `yaml:"metricsPort"`
		RequestTimeout string `yaml:"requestTimeout"`
	} `yaml:"server"`

	System struct {
		DataPath string `yaml:"dataPath"`
	} `yaml:"system"`
}

func Load() (Settings, error) {
	// Try to load from YAML file first
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromYAML(configPath)
	}

	// Fallback to environment variables
	return loadFromEnv()
}

func loadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	requestTimeout, err := time.ParseDuration(config.Server.RequestTimeout)
	if err != nil {
		requestTimeout = 10 * time.Second
	}

	settings := Settings{
		ModelPath:      getEnvOrDefault("MODEL_PATH", config.Artifacts.Model),
		EncodersPath:   getEnvOrDefault("ENCODERS_PATH", config.Artifacts.Encoders),
		ColumnsPath:    getEnvOrDefault("COLUMNS_PATH", config.Artifacts.Columns),
		DataPath:       getEnvOrDefault("DATA_PATH", config.System.DataPath),
		HTTPPort:       getIntFromEnvOrConfig("HTTP_PORT", config.Server.Port),
		MetricsPort:    getIntFromEnvOrConfig("METRICS_PORT", config.Server.MetricsPort),
		RequestTimeout: requestTimeout,
	}
	applyDefaults(&settings)

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func loadFromEnv() (Settings, error) {
	settings := Settings{
		ModelPath:      getEnvOrDefault("MODEL_PATH", "artifacts/model.json"),
		EncodersPath:   getEnvOrDefault("ENCODERS_PATH", "artifacts/encoders.json"),
		ColumnsPath:    getEnvOrDefault("COLUMNS_PATH", "artifacts/feature_columns.json"),
		DataPath:       os.Getenv("DATA_PATH"), // optional
		HTTPPort:       getIntOrDefault("HTTP_PORT", 8080),
		MetricsPort:    getIntOrDefault("METRICS_PORT", 9090),
		RequestTimeout: getDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
	}

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func applyDefaults(s *Settings) {
	if s.ModelPath == "" {
		s.ModelPath = "artifacts/model.json"
	}
	if s.EncodersPath == "" {
		s.EncodersPath = "artifacts/encoders.json"
	}
	if s.ColumnsPath == "" {
		s.ColumnsPath = "artifacts/feature_columns.json"
	}
	if s.HTTPPort == 0 {
		s.HTTPPort = 8080
	}
	if s.MetricsPort == 0 {
		s.MetricsPort = 9090
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getIntFromEnvOrConfig(key string, configValue int) int {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.Atoi(env); err == nil {
			return val
		}
	}
	return configValue
}

// validateSettings performs validation of configuration values
func validateSettings(settings *Settings) error {
	if settings.ModelPath == "" {
		return fmt.Errorf("model path cannot be empty")
	}
	if settings.EncodersPath == "" {
		return fmt.Errorf("encoders path cannot be empty")
	}
	if settings.ColumnsPath == "" {
		return fmt.Errorf("feature columns path cannot be empty")
	}

	if settings.HTTPPort < 1024 || settings.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port must be between 1024 and 65535, got %d", settings.HTTPPort)
	}
	if settings.MetricsPort < 1024 || settings.MetricsPort > 65535 {
		return fmt.Errorf("metrics port must be between 1024 and 65535, got %d", settings.MetricsPort)
	}
	if settings.HTTPPort == settings.MetricsPort {
		return fmt.Errorf("HTTP port and metrics port must differ, both are %d", settings.HTTPPort)
	}

	if settings.RequestTimeout < time.Second || settings.RequestTimeout > time.Minute {
		return fmt.Errorf("request timeout must be between 1s and 1m, got %v", settings.RequestTimeout)
	}

	return nil
}
