package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrMissingAPIKey     = goerr.New("API key is required")
	ErrInvalidEndpoint   = goerr.New("invalid API endpoint")
	ErrInvalidOutputDir  = goerr.New("invalid output directory")
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrPromptUnavailable = goerr.New("cannot prompt for API key without a terminal")
)
