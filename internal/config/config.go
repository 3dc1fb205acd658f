// Package config provides configuration loading and structs for the ARLook server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	LLM    LLMConfig    `yaml:"llm"`
	Search SearchConfig `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig holds property data source settings. Paths may mix CSV and XLSX
// files; SQLitePath is an optional persistent store loaded alongside them.
type DataConfig struct {
	Paths      []string `yaml:"paths"`
	SQLitePath string   `yaml:"sqlite_path"`
	// UseSampleData appends the built-in sample listings to whatever the
	// file sources yield. Duplicate names resolve last-wins.
	UseSampleData bool `yaml:"use_sample_data"`
	// Watch reloads file sources when they change on disk.
	Watch bool `yaml:"watch"`
}

// LLMConfig holds settings for the external text-completion service.
type LLMConfig struct {
	Model          string  `yaml:"model"`
	APIKeyEnv      string  `yaml:"api_key_env"`
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	Temperature    float64 `yaml:"temperature"`
}

// SearchConfig holds retrieval settings. The weights and cutoffs are
// empirically chosen; they are surfaced here for tuning rather than treated
// as correctness requirements.
type SearchConfig struct {
	MaxResults        int           `yaml:"max_results"`
	SemanticCutoff    float64       `yaml:"semantic_cutoff"`
	VectorWeight      float64       `yaml:"vector_weight"`
	TextWeight        float64       `yaml:"text_weight"`
	ConfidenceDivisor float64       `yaml:"confidence_divisor"`
	CacheSize         int           `yaml:"cache_size"`
	CacheTTLSeconds   int           `yaml:"cache_ttl_seconds"`
	Keyword           KeywordConfig `yaml:"keyword"`
}

// KeywordConfig holds the rule weights and tolerances of the keyword matcher.
type KeywordConfig struct {
	PriceWeight        int     `yaml:"price_weight"`
	BudgetApproxWeight int     `yaml:"budget_approx_weight"`
	RoomWeight         int     `yaml:"room_weight"`
	AmenityWeight      int     `yaml:"amenity_weight"`
	ParkingWeight      int     `yaml:"parking_weight"`
	ProximityWeight    int     `yaml:"proximity_weight"`
	DistanceWeight     int     `yaml:"distance_weight"`
	PriceTolerance     float64 `yaml:"price_tolerance"`
	DistanceTolerance  int     `yaml:"distance_tolerance"`
	NearbyMaxDistance  int     `yaml:"nearby_max_distance"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	for i := range cfg.Data.Paths {
		cfg.Data.Paths[i] = expandPath(cfg.Data.Paths[i], configDir)
	}
	if cfg.Data.SQLitePath != "" {
		cfg.Data.SQLitePath = expandPath(cfg.Data.SQLitePath, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
