package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library   LibraryConfig   `toml:"library"`
	Matching  MatchingConfig  `toml:"matching"`
	Generator GeneratorConfig `toml:"generator"`
	Compare   CompareConfig   `toml:"compare"`
	Log       LogConfig       `toml:"log"`
}

// LibraryConfig contains the default library and output folders for picking.
type LibraryConfig struct {
	Root   string `toml:"root"`
	Output string `toml:"output"`
}

// MatchingConfig controls how song list entries are matched against files.
type MatchingConfig struct {
	UseMetadata bool    `toml:"use_metadata"`
	Threshold   float64 `toml:"threshold"`
}

// GeneratorConfig contains playlist generation defaults.
type GeneratorConfig struct {
	UseMetadata    bool `toml:"use_metadata"`
	IncludeSubdirs bool `toml:"include_subdirs"`
}

// CompareConfig contains song list comparison defaults.
type CompareConfig struct {
	ReportDir        string  `toml:"report_dir"`
	SimilarThreshold float64 `toml:"similar_threshold"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks value ranges that the TOML decoder cannot express.
func (c *Config) Validate() error {
	if c.Matching.Threshold <= 0 || c.Matching.Threshold > 1 {
		return fmt.Errorf("%w: matching.threshold must be in (0, 1], got %v", ErrInvalidConfig, c.Matching.Threshold)
	}
	if c.Compare.SimilarThreshold < 0 || c.Compare.SimilarThreshold > 1 {
		return fmt.Errorf("%w: compare.similar_threshold must be in [0, 1], got %v", ErrInvalidConfig, c.Compare.SimilarThreshold)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("%w: failed to write config file: %v", ErrIOFailure, err)
	}

	return nil
}
