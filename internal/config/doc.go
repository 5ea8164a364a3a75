// Package config provides centralized configuration management for the survey
// analytics service. It loads configuration from environment variables and an
// optional YAML file and exposes typed sections to the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML, SURVEY_CONFIG_FILE or ./config.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SURVEY_<SECTION>_<FIELD>:
//
//	SURVEY_SERVER_PORT=8080
//	SURVEY_LOGGING_LEVEL=debug
//	SURVEY_ANALYSIS_TEXT_ENGINE=basic
//	SURVEY_ANALYSIS_STOPWORDS_FILE=/etc/survey/stopwords.txt
//	SURVEY_EXPORT_CSV_BOM=false
//	SURVEY_SOURCE_DATA_DIR=/var/lib/survey
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return fmt.Errorf("failed to load configuration: %w", err)
//	}
//	paths, err := cfg.ResolvePaths()
package config
