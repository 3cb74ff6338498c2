package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Writeback WritebackConfig `yaml:"writeback" mapstructure:"writeback"`
	Retry     RetryConfig     `yaml:"retry" mapstructure:"retry"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AdminToken     string   `yaml:"admin_token" mapstructure:"admin_token"`
}

// FetchConfig controls paged reads of questions and predictions.
type FetchConfig struct {
	PageSize int `yaml:"page_size" mapstructure:"page_size"`
}

// WritebackConfig paces ranking writes. A zero delay disables pacing.
type WritebackConfig struct {
	BatchSize    int `yaml:"batch_size" mapstructure:"batch_size"`
	BatchDelayMs int `yaml:"batch_delay_ms" mapstructure:"batch_delay_ms"`
}

// RetryConfig configures store-boundary retries.
type RetryConfig struct {
	MaxAttempts      int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int     `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int     `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	Multiplier       float64 `yaml:"multiplier" mapstructure:"multiplier"`
	JitterFraction   float64 `yaml:"jitter_fraction" mapstructure:"jitter_fraction"`
}

// ScoringConfig is the rules table consumed by the scoring engine.
//
// Table families (RegionalTables, BonusTables) accept exact table ids or
// path.Match patterns. Table ids are compared case-insensitively.
type ScoringConfig struct {
	MetadataTable    string                 `yaml:"metadata_table" mapstructure:"metadata_table"`
	RegionalTables   []string               `yaml:"regional_tables" mapstructure:"regional_tables"`
	BonusTables      []string               `yaml:"bonus_tables" mapstructure:"bonus_tables"`
	BonusRewards     map[string]BonusReward `yaml:"bonus_rewards" mapstructure:"bonus_rewards"`
	UndecidedMarkers []string               `yaml:"undecided_markers" mapstructure:"undecided_markers"`
	TieBreak         string                 `yaml:"tie_break" mapstructure:"tie_break"`
	FoldText         bool                   `yaml:"fold_text" mapstructure:"fold_text"`
	RulesFile        string                 `yaml:"rules_file" mapstructure:"rules_file"`
}

// BonusReward holds the reward tiers of one bonus/placement table.
type BonusReward struct {
	Full    int `yaml:"full" mapstructure:"full"`
	Partial int `yaml:"partial" mapstructure:"partial"`
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
	v.SetEnvPrefix("POOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "pool.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("fetch.page_size", 5000)
	v.SetDefault("writeback.batch_size", 10)
	v.SetDefault("writeback.batch_delay_ms", 1000)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_ms", 500)
	v.SetDefault("retry.max_backoff_ms", 10000)
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("retry.jitter_fraction", 0.25)
	v.SetDefault("scoring.metadata_table", "T1")
	v.SetDefault("scoring.regional_tables", []string{"R*"})
	v.SetDefault("scoring.bonus_tables", []string{"B*"})
	v.SetDefault("scoring.bonus_rewards", map[string]any{
		"b1": map[string]any{"full": 20, "partial": 40},
		"b2": map[string]any{"full": 30, "partial": 50},
		"b3": map[string]any{"full": 20, "partial": 0},
	})
	v.SetDefault("scoring.undecided_markers", []string{"TBD", "PENDING", "?", "-"})
	v.SetDefault("scoring.tie_break", "name")
	v.SetDefault("scoring.fold_text", false)
	v.SetDefault("scoring.rules_file", "")

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

	if cfg.Scoring.RulesFile != "" {
		rules, err := LoadRules(cfg.Scoring.RulesFile)
		if err != nil {
			return nil, err
		}
		rules.RulesFile = cfg.Scoring.RulesFile
		cfg.Scoring = *rules
	}

	return &cfg, nil
}

// Validate checks the settings a command mode needs. Modes: "store" for
// commands that read or write the store, "serve" for the HTTP API.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "store", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be sqlite or postgres (got %q)", c.Store.Driver))
	}
	if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required for postgres (POOL_STORE_DATABASE_URL)")
	}
	if c.Fetch.PageSize <= 0 {
		errs = append(errs, "fetch.page_size must be > 0")
	}
	if c.Writeback.BatchSize < 1 || c.Writeback.BatchSize > 100 {
		errs = append(errs, "writeback.batch_size must be between 1 and 100")
	}
	if c.Writeback.BatchDelayMs < 0 {
		errs = append(errs, "writeback.batch_delay_ms must be >= 0")
	}

	if mode == "serve" && c.Server.Port <= 0 {
		errs = append(errs, "server.port must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
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
