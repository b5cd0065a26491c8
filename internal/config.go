package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App  ApplicationConfig `yaml:"app"`
	Scan ScanConfig        `yaml:"scan"`
	LLM  LLMConfig         `yaml:"llm"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Scan.Validate(); err != nil {
		return err
	}
	return c.LLM.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// ScanConfig controls which files are selected for card generation.
type ScanConfig struct {
	// Dir is the root directory to scan.
	Dir string `yaml:"dir"`
	// Extensions is the comma-separated allow-list of file extensions.
	// An empty list selects nothing.
	Extensions string `yaml:"extensions"`
	// OutputDir is the cards directory name, created under Dir.
	OutputDir string `yaml:"output_dir"`
}

// Validate validates the scan configuration.
func (c *ScanConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
	)
}

// LLMConfig holds the completion endpoint configuration. APIKey is normally
// left empty here and supplied via flag, environment, or interactive prompt.
type LLMConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Validate validates the LLM configuration.
func (c *LLMConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Scan: ScanConfig{
			Dir:        ".",
			Extensions: "js,ts,py,java,go",
			OutputDir:  "cards",
		},
		LLM: LLMConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o",
			TimeoutSeconds: 120,
		},
	}
}
