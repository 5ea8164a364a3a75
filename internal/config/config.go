package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load
const EnvPrefix = "SURVEY"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Source    SourceConfig    `yaml:"source" envconfig:"SOURCE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" envconfig:"MAX_BODY_BYTES" default:"10485760"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// AnalysisConfig selects the text analysis capability and its resources
type AnalysisConfig struct {
	// TextEngine is "lexicon" (full analyzer) or "basic" (all-neutral stub)
	TextEngine    string `yaml:"text_engine" envconfig:"TEXT_ENGINE" default:"lexicon"`
	LexiconFile   string `yaml:"lexicon_file" envconfig:"LEXICON_FILE"`
	StopwordsFile string `yaml:"stopwords_file" envconfig:"STOPWORDS_FILE"`
	MaxKeywords   int    `yaml:"max_keywords" envconfig:"MAX_KEYWORDS" default:"10"`
	// Workers bounds the per-question fan-out of a single analytics run
	Workers int `yaml:"workers" envconfig:"WORKERS" default:"4"`
}

// ExportConfig contains export rendering options
type ExportConfig struct {
	CSVBOM         bool   `yaml:"csv_bom" envconfig:"CSV_BOM" default:"true"`
	MaxColumnWidth int    `yaml:"max_column_width" envconfig:"MAX_COLUMN_WIDTH" default:"50"`
	OutputDir      string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/exports"`
}

// SourceConfig points at the upstream questionnaire/response documents
type SourceConfig struct {
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" default:"prometheus"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
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

// mergeConfigs lays file values over env values that were left at their defaults.
// An env var that was explicitly set always wins.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if fileConfig.Server.Port != 0 && !isSet("SERVER_PORT") {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if fileConfig.Server.ReadTimeout != 0 && !isSet("SERVER_READ_TIMEOUT") {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if fileConfig.Server.WriteTimeout != 0 && !isSet("SERVER_WRITE_TIMEOUT") {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if fileConfig.Server.RequestTimeout != 0 && !isSet("SERVER_REQUEST_TIMEOUT") {
		envConfig.Server.RequestTimeout = fileConfig.Server.RequestTimeout
	}
	if fileConfig.Logging.Level != "" && !isSet("LOGGING_LEVEL") {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Output != "" && !isSet("LOGGING_OUTPUT") {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" && !isSet("LOGGING_FILE_PATH") {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Analysis.TextEngine != "" && !isSet("ANALYSIS_TEXT_ENGINE") {
		envConfig.Analysis.TextEngine = fileConfig.Analysis.TextEngine
	}
	if fileConfig.Analysis.LexiconFile != "" && !isSet("ANALYSIS_LEXICON_FILE") {
		envConfig.Analysis.LexiconFile = fileConfig.Analysis.LexiconFile
	}
	if fileConfig.Analysis.StopwordsFile != "" && !isSet("ANALYSIS_STOPWORDS_FILE") {
		envConfig.Analysis.StopwordsFile = fileConfig.Analysis.StopwordsFile
	}
	if fileConfig.Analysis.MaxKeywords != 0 && !isSet("ANALYSIS_MAX_KEYWORDS") {
		envConfig.Analysis.MaxKeywords = fileConfig.Analysis.MaxKeywords
	}
	if fileConfig.Analysis.Workers != 0 && !isSet("ANALYSIS_WORKERS") {
		envConfig.Analysis.Workers = fileConfig.Analysis.Workers
	}
	if fileConfig.Export.MaxColumnWidth != 0 && !isSet("EXPORT_MAX_COLUMN_WIDTH") {
		envConfig.Export.MaxColumnWidth = fileConfig.Export.MaxColumnWidth
	}
	if fileConfig.Export.OutputDir != "" && !isSet("EXPORT_OUTPUT_DIR") {
		envConfig.Export.OutputDir = fileConfig.Export.OutputDir
	}
	if fileConfig.Source.DataDir != "" && !isSet("SOURCE_DATA_DIR") {
		envConfig.Source.DataDir = fileConfig.Source.DataDir
	}
	if fileConfig.Telemetry.TraceExporter != "" && !isSet("TELEMETRY_TRACE_EXPORTER") {
		envConfig.Telemetry.TraceExporter = fileConfig.Telemetry.TraceExporter
	}
	if fileConfig.Telemetry.MetricExporter != "" && !isSet("TELEMETRY_METRIC_EXPORTER") {
		envConfig.Telemetry.MetricExporter = fileConfig.Telemetry.MetricExporter
	}

	return envConfig
}

func isSet(name string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + name)
	return ok
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	switch strings.ToLower(c.Analysis.TextEngine) {
	case TextEngineLexicon, TextEngineBasic:
	default:
		return fmt.Errorf("unknown text engine: %q", c.Analysis.TextEngine)
	}

	if c.Analysis.MaxKeywords <= 0 {
		c.Analysis.MaxKeywords = DefaultMaxKeywords
	}

	if c.Analysis.Workers <= 0 {
		c.Analysis.Workers = 1
	}

	if c.Export.MaxColumnWidth <= 0 || c.Export.MaxColumnWidth > MaxColumnWidth {
		c.Export.MaxColumnWidth = MaxColumnWidth
	}

	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
		return explicit
	}

	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			MaxBodyBytes:    10 << 20,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Analysis: AnalysisConfig{
			TextEngine:  TextEngineLexicon,
			MaxKeywords: DefaultMaxKeywords,
			Workers:     4,
		},
		Export: ExportConfig{
			CSVBOM:         true,
			MaxColumnWidth: MaxColumnWidth,
			OutputDir:      "data/exports",
		},
		Source: SourceConfig{
			DataDir: "data",
		},
		Telemetry: TelemetryConfig{
			Environment:    "development",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}
