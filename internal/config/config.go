package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Analyze AnalyzeConfig `yaml:"analyze" envconfig:"ANALYZE"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	// OperationTimeout bounds long-running operation requests, which can
	// stream large spreadsheets and need far more than the read timeout.
	OperationTimeout time.Duration `yaml:"operation_timeout" envconfig:"OPERATION_TIMEOUT" default:"10m"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"25"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/datamap.log"`
}

// AnalyzeConfig tunes the schema inference engine.
type AnalyzeConfig struct {
	MaxSampleValues   int     `yaml:"max_sample_values" envconfig:"MAX_SAMPLE_VALUES" default:"5"`
	TypeVoteThreshold float64 `yaml:"type_vote_threshold" envconfig:"TYPE_VOTE_THRESHOLD" default:"0.95"`
	ColumnWorkers     int     `yaml:"column_workers" envconfig:"COLUMN_WORKERS" default:"4"`
}

// Load loads configuration from environment variables (prefix DATAMAP) and,
// when present, a YAML config file. Environment values take precedence.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("DATAMAP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Paths.resolve(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath returns the config file location, overridable via env.
func configFilePath() string {
	if p := os.Getenv("DATAMAP_CONFIG_FILE"); p != "" {
		return p
	}
	return "datamap.yaml"
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config into env config. A file value wins unless
// the corresponding environment variable was explicitly set; envconfig's
// default tags alone do not shadow the file.
func mergeConfigs(fileCfg, envCfg Config) Config {
	merged := envCfg

	if fileCfg.Server.Port != 0 && !envSet("DATAMAP_SERVER_PORT") {
		merged.Server.Port = fileCfg.Server.Port
	}
	if fileCfg.Server.ReadTimeout != 0 && !envSet("DATAMAP_SERVER_READ_TIMEOUT") {
		merged.Server.ReadTimeout = fileCfg.Server.ReadTimeout
	}
	if fileCfg.Server.WriteTimeout != 0 && !envSet("DATAMAP_SERVER_WRITE_TIMEOUT") {
		merged.Server.WriteTimeout = fileCfg.Server.WriteTimeout
	}
	if fileCfg.Server.IdleTimeout != 0 && !envSet("DATAMAP_SERVER_IDLE_TIMEOUT") {
		merged.Server.IdleTimeout = fileCfg.Server.IdleTimeout
	}
	if fileCfg.Server.RateLimitRPS != 0 && !envSet("DATAMAP_SERVER_RATE_LIMIT_RPS") {
		merged.Server.RateLimitRPS = fileCfg.Server.RateLimitRPS
	}
	if fileCfg.Server.RateLimitBurst != 0 && !envSet("DATAMAP_SERVER_RATE_LIMIT_BURST") {
		merged.Server.RateLimitBurst = fileCfg.Server.RateLimitBurst
	}
	if fileCfg.Server.ShutdownTimeout != 0 && !envSet("DATAMAP_SERVER_SHUTDOWN_TIMEOUT") {
		merged.Server.ShutdownTimeout = fileCfg.Server.ShutdownTimeout
	}
	if fileCfg.Server.OperationTimeout != 0 && !envSet("DATAMAP_SERVER_OPERATION_TIMEOUT") {
		merged.Server.OperationTimeout = fileCfg.Server.OperationTimeout
	}
	if fileCfg.Logging.Level != "" && !envSet("DATAMAP_LOGGING_LEVEL") {
		merged.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Output != "" && !envSet("DATAMAP_LOGGING_OUTPUT") {
		merged.Logging.Output = fileCfg.Logging.Output
	}
	if fileCfg.Logging.FilePath != "" && !envSet("DATAMAP_LOGGING_FILE_PATH") {
		merged.Logging.FilePath = fileCfg.Logging.FilePath
	}
	if fileCfg.Paths.BaseDir != "" && !envSet("DATAMAP_PATHS_BASE_DIR") {
		merged.Paths.BaseDir = fileCfg.Paths.BaseDir
	}
	if fileCfg.Paths.InputDir != "" && !envSet("DATAMAP_PATHS_INPUT_DIR") {
		merged.Paths.InputDir = fileCfg.Paths.InputDir
	}
	if fileCfg.Paths.OutputDir != "" && !envSet("DATAMAP_PATHS_OUTPUT_DIR") {
		merged.Paths.OutputDir = fileCfg.Paths.OutputDir
	}
	if fileCfg.Paths.MappingsDir != "" && !envSet("DATAMAP_PATHS_MAPPINGS_DIR") {
		merged.Paths.MappingsDir = fileCfg.Paths.MappingsDir
	}
	if fileCfg.Paths.ReportsDir != "" && !envSet("DATAMAP_PATHS_REPORTS_DIR") {
		merged.Paths.ReportsDir = fileCfg.Paths.ReportsDir
	}
	if fileCfg.Paths.LogsDir != "" && !envSet("DATAMAP_PATHS_LOGS_DIR") {
		merged.Paths.LogsDir = fileCfg.Paths.LogsDir
	}
	if fileCfg.Analyze.MaxSampleValues != 0 && !envSet("DATAMAP_ANALYZE_MAX_SAMPLE_VALUES") {
		merged.Analyze.MaxSampleValues = fileCfg.Analyze.MaxSampleValues
	}
	if fileCfg.Analyze.TypeVoteThreshold != 0 && !envSet("DATAMAP_ANALYZE_TYPE_VOTE_THRESHOLD") {
		merged.Analyze.TypeVoteThreshold = fileCfg.Analyze.TypeVoteThreshold
	}
	if fileCfg.Analyze.ColumnWorkers != 0 && !envSet("DATAMAP_ANALYZE_COLUMN_WORKERS") {
		merged.Analyze.ColumnWorkers = fileCfg.Analyze.ColumnWorkers
	}

	return merged
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// validate checks the configuration for obviously broken values.
func (c *Config) validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Analyze.TypeVoteThreshold <= 0 || c.Analyze.TypeVoteThreshold > 1 {
		return fmt.Errorf("type vote threshold must be in (0,1], got %f", c.Analyze.TypeVoteThreshold)
	}
	if c.Analyze.ColumnWorkers < 1 {
		return fmt.Errorf("column workers must be >= 1, got %d", c.Analyze.ColumnWorkers)
	}
	switch c.Logging.Output {
	case "", "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}
	return nil
}
