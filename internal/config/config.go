package config

import (
	"strconv"
	"strings"

	"github.com/AKapaldo/ROT/internal/classify"
	"github.com/spf13/viper"
)

// Config represents the classifier configuration
type Config struct {
	// Scan settings
	AgeYears     int      `mapstructure:"-"`             // obsolescence threshold in years
	Timestamp    string   `mapstructure:"timestamp"`     // modified, accessed, created
	Workers      int      `mapstructure:"workers"`       // bound on concurrent hashing tasks
	Exclude      []string `mapstructure:"exclude"`       // directory names to skip
	Extensions   []string `mapstructure:"extensions"`    // trivial-extension denylist override
	DenylistPath string   `mapstructure:"denylist_path"` // YAML denylist file

	// Report settings
	OutputDir string `mapstructure:"output_dir"` // directory report CSVs are written to
}

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("age", classify.DefaultAgeYears)
	v.SetDefault("timestamp", "modified")
	v.SetDefault("workers", classify.DefaultHashWorkers)
	v.SetDefault("exclude", []string{".git", "node_modules", "vendor", ".svn", ".hg"})
	v.SetDefault("extensions", []string{})
	v.SetDefault("denylist_path", "")
	v.SetDefault("output_dir", ".")

	// Read environment variables
	v.SetEnvPrefix("ROT")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Age is parsed leniently: a malformed or negative value falls back
	// to the default instead of failing the run.
	cfg.AgeYears = ParseAge(v.GetString("age"))

	return &cfg, nil
}

// ParseAge parses an age-in-years value, falling back to the default on
// anything that is not a non-negative integer.
func ParseAge(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return classify.DefaultAgeYears
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return classify.DefaultAgeYears
	}
	return n
}
