// Package config provides configuration utilities for the application.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/javutech/medpipe/internal/llm"
)

// LoadLLMConfig loads LLM configuration from Viper and environment
// variables. It follows this precedence:
// 1. Viper configuration (from config file or MEDPIPE_ env vars)
// 2. Direct environment variables (GOOGLE_API_KEY)
// 3. Default values
func LoadLLMConfig() llm.Config {
	cfg := llm.Config{
		Provider:   viper.GetString("llm.provider"),
		Model:      viper.GetString("llm.model"),
		APIKey:     viper.GetString("llm.api_key"),
		MaxRetries: viper.GetInt("llm.max_retries"),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	return cfg
}

// LoadGraphConfig returns the SPARQL endpoint and URI prefix for graph
// pushes. The endpoint may be empty; pushing then fails with a clear error
// while local graph builds keep working.
func LoadGraphConfig() (endpoint, prefix string) {
	return viper.GetString("graph.sparql_endpoint"), viper.GetString("graph.uri_prefix")
}
