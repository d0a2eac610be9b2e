// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, e.g. RESUME_MATCHER_DATA_DIR.
const EnvPrefix = "RESUME_MATCHER"

// Configuration keys, shared by the config file, environment variables and CLI flag bindings.
const (
	KeyDataDir            = "data_dir"
	KeyEmbeddingsDir      = "embeddings_dir"
	KeyTaxonomyPath       = "taxonomy_path"
	KeySemanticWeight     = "semantic_weight"
	KeySkillWeight        = "skill_weight"
	KeyEmbeddingDimension = "embedding_dimension"
	KeyEmbeddingModel     = "embedding_model"
	KeyGeminiAPIKey       = "gemini_api_key"
	KeyDatabaseURL        = "database_url"
	KeyMaxSnippets        = "max_snippets"
	KeyUseVectorIndex     = "use_vector_index"
	KeyLogJSON            = "log_json"
	KeyDebug              = "debug"
)

const defaultConfigName = "resume-matcher"

// Config holds runtime settings for the matcher.
type Config struct {
	// Storage
	DataDir       string `mapstructure:"data_dir" json:"data_dir"`             // Resume and analysis records
	EmbeddingsDir string `mapstructure:"embeddings_dir" json:"embeddings_dir"` // Vector stores, including the embedding cache
	DatabaseURL   string `mapstructure:"database_url" json:"database_url"`     // Optional PostgreSQL URL; file storage when empty

	// Matching
	TaxonomyPath   string  `mapstructure:"taxonomy_path" json:"taxonomy_path"` // Skill taxonomy YAML; built-in taxonomy when empty
	SemanticWeight float64 `mapstructure:"semantic_weight" json:"semantic_weight"`
	SkillWeight    float64 `mapstructure:"skill_weight" json:"skill_weight"`
	MaxSnippets    int     `mapstructure:"max_snippets" json:"max_snippets"`
	UseVectorIndex bool    `mapstructure:"use_vector_index" json:"use_vector_index"`

	// Embeddings
	EmbeddingDimension int    `mapstructure:"embedding_dimension" json:"embedding_dimension"`
	EmbeddingModel     string `mapstructure:"embedding_model" json:"embedding_model"`
	GeminiAPIKey       string `mapstructure:"gemini_api_key" json:"-"`

	// Logging
	LogJSON bool `mapstructure:"log_json" json:"log_json"`
	Debug   bool `mapstructure:"debug" json:"debug"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DataDir:            "data",
		EmbeddingsDir:      "data/embeddings",
		SemanticWeight:     0.65,
		SkillWeight:        0.35,
		MaxSnippets:        2,
		UseVectorIndex:     true,
		EmbeddingDimension: 768,
		EmbeddingModel:     "text-embedding-004",
	}
}

// Load reads configuration from defaults, an optional config file and RESUME_MATCHER_* environment
// variables, in increasing precedence. Flags bound on v by the caller take precedence over all of them.
// With an empty path, resume-matcher.{yaml,json} in the working directory is used when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyGeminiAPIKey, EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind gemini api key env: %w", err)
	}
	if err := v.BindEnv(KeyDatabaseURL, EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database url env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault(KeyDataDir, d.DataDir)
	v.SetDefault(KeyEmbeddingsDir, d.EmbeddingsDir)
	v.SetDefault(KeyTaxonomyPath, d.TaxonomyPath)
	v.SetDefault(KeySemanticWeight, d.SemanticWeight)
	v.SetDefault(KeySkillWeight, d.SkillWeight)
	v.SetDefault(KeyEmbeddingDimension, d.EmbeddingDimension)
	v.SetDefault(KeyEmbeddingModel, d.EmbeddingModel)
	v.SetDefault(KeyGeminiAPIKey, d.GeminiAPIKey)
	v.SetDefault(KeyDatabaseURL, d.DatabaseURL)
	v.SetDefault(KeyMaxSnippets, d.MaxSnippets)
	v.SetDefault(KeyUseVectorIndex, d.UseVectorIndex)
	v.SetDefault(KeyLogJSON, d.LogJSON)
	v.SetDefault(KeyDebug, d.Debug)
}

// Validate checks that the configuration has valid values.
// Zero weights are allowed; scoring falls back to its defaults when both are zero.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config error: '%s' must not be empty", KeyDataDir)
	}
	if c.EmbeddingsDir == "" {
		return fmt.Errorf("config error: '%s' must not be empty", KeyEmbeddingsDir)
	}
	if c.SemanticWeight < 0 {
		return fmt.Errorf("config error: '%s' must be non-negative", KeySemanticWeight)
	}
	if c.SkillWeight < 0 {
		return fmt.Errorf("config error: '%s' must be non-negative", KeySkillWeight)
	}
	if c.EmbeddingDimension <= 0 {
		return fmt.Errorf("config error: '%s' must be positive", KeyEmbeddingDimension)
	}
	if c.MaxSnippets < 0 {
		return fmt.Errorf("config error: '%s' must be non-negative", KeyMaxSnippets)
	}

	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.TaxonomyPath)
		}
	}

	return nil
}
