package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	DotDB     DotDBConfig     `yaml:"dotdb" mapstructure:"dotdb"`
	Jina      JinaConfig      `yaml:"jina" mapstructure:"jina"`
	Scraper   ScraperConfig   `yaml:"scraper" mapstructure:"scraper"`
	Leadgen   LeadgenConfig   `yaml:"leadgen" mapstructure:"leadgen"`
	Research  ResearchConfig  `yaml:"research" mapstructure:"research"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	// MaxRetries bounds attempts for each text-generation call before the
	// enclosing stage degrades to an empty result.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`
}

// DotDBConfig holds the keyword-matching service settings.
type DotDBConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// JinaConfig holds Jina AI settings for site validation and web search.
type JinaConfig struct {
	Key       string  `yaml:"key" mapstructure:"key"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ScraperConfig holds the auxiliary company-info scraper settings.
type ScraperConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// LeadgenConfig configures the DotDB discovery sub-pipeline.
type LeadgenConfig struct {
	// MaxKeywords caps the expanded keyword set sent to DotDB.
	MaxKeywords int `yaml:"max_keywords" mapstructure:"max_keywords"`
	// ValidateConcurrency caps in-flight site-validation requests.
	ValidateConcurrency int `yaml:"validate_concurrency" mapstructure:"validate_concurrency"`
	// PersonasFile optionally overrides the built-in classification guide
	// with tiered buyer personas loaded from YAML.
	PersonasFile string `yaml:"personas_file" mapstructure:"personas_file"`
}

// ResearchConfig configures the research discovery path.
type ResearchConfig struct {
	MaxSearchQueries int `yaml:"max_search_queries" mapstructure:"max_search_queries"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 8192)
	v.SetDefault("anthropic.max_retries", 3)
	v.SetDefault("jina.base_url", "https://s.jina.ai")
	v.SetDefault("jina.rate_limit", 10)
	v.SetDefault("leadgen.max_keywords", 80)
	v.SetDefault("leadgen.validate_concurrency", 10)
	v.SetDefault("research.max_search_queries", 5)
	v.SetDefault("scraper.url", "http://localhost:3000/api")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
