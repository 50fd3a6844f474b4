// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	WFS    WFSConfig    `yaml:"wfs" mapstructure:"wfs"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// OutputConfig configures where the offline dataset lands.
type OutputConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"`
	SummaryPath string `yaml:"summary_path" mapstructure:"summary_path"`
}

// WFSConfig configures the WFS client behavior.
type WFSConfig struct {
	// Source identifies the upstream system in the run summary.
	Source string `yaml:"source" mapstructure:"source"`
	// SRS is the spatial reference code requested and passed through unchanged.
	SRS            string  `yaml:"srs" mapstructure:"srs"`
	PageSize       int     `yaml:"page_size" mapstructure:"page_size"`
	MaxPages       int     `yaml:"max_pages" mapstructure:"max_pages"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts    int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	RetryDelaySecs int     `yaml:"retry_delay_secs" mapstructure:"retry_delay_secs"`
	RatePerSec     float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	UserAgent      string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// Timeout returns the per-request timeout.
func (w WFSConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSecs) * time.Second
}

// RetryDelay returns the fixed pause between page retry attempts.
func (w WFSConfig) RetryDelay() time.Duration {
	return time.Duration(w.RetryDelaySecs) * time.Second
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
	v.SetEnvPrefix("DERA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("output.dir", "public/data/dera")
	v.SetDefault("output.summary_path", "public/data/metadata.json")
	v.SetDefault("wfs.source", "IDEAndalucía DERA WFS")
	v.SetDefault("wfs.srs", "EPSG:25830")
	v.SetDefault("wfs.page_size", 1000)
	v.SetDefault("wfs.max_pages", 500)
	v.SetDefault("wfs.timeout_secs", 60)
	v.SetDefault("wfs.max_attempts", 3)
	v.SetDefault("wfs.retry_delay_secs", 5)
	v.SetDefault("wfs.rate_per_sec", 2.0)
	v.SetDefault("wfs.user_agent", "dera-cli/1.0")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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
