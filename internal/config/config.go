package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Data struct {
		Dir             string `yaml:"dir" env:"REGISTRAR_DATA_DIR"`
		StudentsFile    string `yaml:"students_file" env:"REGISTRAR_STUDENTS_FILE"`
		CoursesFile     string `yaml:"courses_file" env:"REGISTRAR_COURSES_FILE"`
		EnrollmentsFile string `yaml:"enrollments_file" env:"REGISTRAR_ENROLLMENTS_FILE"`
	} `yaml:"data"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"REGISTRAR_SEED"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"REGISTRAR_LOG_LEVEL"`
		Format string `yaml:"format" env:"REGISTRAR_LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// The file is optional; defaults apply first, then the file, then the
// environment.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Data.Dir = "data"
	config.Data.StudentsFile = "students.csv"
	config.Data.CoursesFile = "courses.csv"
	config.Data.EnrollmentsFile = "enrollments.csv"

	config.Seed.Enabled = false

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Data.Dir == "" {
		return fmt.Errorf("data directory is required")
	}
	for name, value := range map[string]string{
		"students file":    config.Data.StudentsFile,
		"courses file":     config.Data.CoursesFile,
		"enrollments file": config.Data.EnrollmentsFile,
	} {
		if value == "" {
			return fmt.Errorf("%s name is required", name)
		}
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", config.Logging.Level)
	}

	switch config.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", config.Logging.Format)
	}

	return nil
}
