package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the atlas scraper
type Config struct {
	// Atlas endpoint settings
	Atlas AtlasConfig `yaml:"atlas" json:"atlas"`

	// Politeness / rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// AtlasConfig holds settings for the atlas website itself
type AtlasConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	DiagnosisCode  string        `yaml:"diagnosis_code" json:"diagnosis_code"`
	ExcludedCodes  []string      `yaml:"excluded_codes" json:"excluded_codes"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// RateLimitConfig holds the politeness intervals applied between remote calls
type RateLimitConfig struct {
	RequestInterval  time.Duration `yaml:"request_interval" json:"request_interval"`
	DownloadInterval time.Duration `yaml:"download_interval" json:"download_interval"`
}

// OutputConfig holds output file and directory configuration
type OutputConfig struct {
	CSVFile        string `yaml:"csv_file" json:"csv_file"`
	ImageDirectory string `yaml:"image_directory" json:"image_directory"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Atlas: AtlasConfig{
			BaseURL:       "https://screening.iarc.fr",
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			DiagnosisCode: "31",
			ExcludedCodes: []string{
				"0", "1", "2", "3", "8", "10", "15", "19", "30", "31", "43",
				"46", "47", "60", "61", "68", "73", "83", "88", "89", "93",
				"96", "102", "105", "111",
			},
			RequestTimeout: 30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestInterval:  1 * time.Second,
			DownloadInterval: 500 * time.Millisecond,
		},
		Output: OutputConfig{
			CSVFile:        "colposcopy_cases.csv",
			ImageDirectory: "images",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	// A .env file in the working directory is picked up when present
	_ = godotenv.Load()

	if baseURL := os.Getenv("COLPOATLAS_BASE_URL"); baseURL != "" {
		c.Atlas.BaseURL = baseURL
	}
	if userAgent := os.Getenv("COLPOATLAS_USER_AGENT"); userAgent != "" {
		c.Atlas.UserAgent = userAgent
	}
	if diagnosis := os.Getenv("COLPOATLAS_DIAGNOSIS_CODE"); diagnosis != "" {
		c.Atlas.DiagnosisCode = diagnosis
	}
	if csvFile := os.Getenv("COLPOATLAS_CSV_FILE"); csvFile != "" {
		c.Output.CSVFile = csvFile
	}
	if imageDir := os.Getenv("COLPOATLAS_IMAGE_DIR"); imageDir != "" {
		c.Output.ImageDirectory = imageDir
	}
	if interval := os.Getenv("COLPOATLAS_REQUEST_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("invalid COLPOATLAS_REQUEST_INTERVAL: %w", err)
		}
		c.RateLimit.RequestInterval = d
	}
	if logLevel := os.Getenv("COLPOATLAS_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".colpoatlas.yaml",
		".colpoatlas.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "colpoatlas", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".colpoatlas.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Atlas.BaseURL == "" {
		errs = append(errs, errors.New("atlas base URL is required"))
	}
	if c.Atlas.UserAgent == "" {
		errs = append(errs, errors.New("user agent is required"))
	}
	if c.Atlas.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.RateLimit.RequestInterval < 0 {
		errs = append(errs, errors.New("request interval cannot be negative"))
	}
	if c.RateLimit.DownloadInterval < 0 {
		errs = append(errs, errors.New("download interval cannot be negative"))
	}

	if c.Output.CSVFile == "" {
		errs = append(errs, errors.New("CSV output file is required"))
	}
	if c.Output.ImageDirectory == "" {
		errs = append(errs, errors.New("image directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if diagnosis, ok := flags["diagnosis"].(string); ok && diagnosis != "" {
		c.Atlas.DiagnosisCode = diagnosis
	}
	if csvFile, ok := flags["output"].(string); ok && csvFile != "" {
		c.Output.CSVFile = csvFile
	}
	if imageDir, ok := flags["images"].(string); ok && imageDir != "" {
		c.Output.ImageDirectory = imageDir
	}
	if delay, ok := flags["delay"].(time.Duration); ok && delay > 0 {
		c.RateLimit.RequestInterval = delay
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence:
// defaults, then config file, then environment, then command line flags.
func Load(path string, flags map[string]interface{}) (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	cfg.MergeCommandLineFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
