// Package config loads CLI-facing settings via viper: defaults first,
// then an optional trackmeta.yaml, then TRACKMETA_* environment
// variables.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/beatlab/trackmeta/analysis"
	"github.com/beatlab/trackmeta/transcode"
)

type Config struct {
	Analysis struct {
		MinDurationSeconds   float64 `mapstructure:"min_duration_seconds"`
		UseTags              bool    `mapstructure:"use_tags"`
		SignalTrustThreshold float64 `mapstructure:"signal_trust_threshold"`
		AgreementTolerance   int     `mapstructure:"agreement_tolerance_bpm"`
		AgreementBonus       float64 `mapstructure:"agreement_bonus"`
		KeyNormalization     float64 `mapstructure:"key_normalization_scale"`
	} `mapstructure:"analysis"`
	Decoder struct {
		FFmpegPath       string `mapstructure:"ffmpeg_path"`
		TargetSampleRate int    `mapstructure:"target_sample_rate"`
		TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"decoder"`
	Keys struct {
		Extended bool `mapstructure:"extended"` // use the wider compatibility wheel
	} `mapstructure:"keys"`
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration. A missing config file is not an error; the
// defaults describe the standard pipeline.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("TRACKMETA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := analysis.DefaultConfig()
	v.SetDefault("analysis.min_duration_seconds", defaults.MinDuration.Seconds())
	v.SetDefault("analysis.use_tags", defaults.UseTags)
	v.SetDefault("analysis.signal_trust_threshold", defaults.Reconciler.SignalTrustThreshold)
	v.SetDefault("analysis.agreement_tolerance_bpm", defaults.Reconciler.AgreementToleranceBPM)
	v.SetDefault("analysis.agreement_bonus", defaults.Reconciler.AgreementBonus)
	v.SetDefault("analysis.key_normalization_scale", defaults.Key.NormalizationScale)

	ffmpegDefaults := transcode.DefaultFFmpegConfig()
	v.SetDefault("decoder.ffmpeg_path", ffmpegDefaults.FFmpegPath)
	v.SetDefault("decoder.target_sample_rate", ffmpegDefaults.TargetSampleRate)
	v.SetDefault("decoder.timeout_seconds", int(ffmpegDefaults.Timeout.Seconds()))

	v.SetDefault("keys.extended", false)
	v.SetDefault("log_level", "info")

	v.SetConfigName("trackmeta")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/trackmeta")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AnalysisConfig expands the flat settings into the pipeline config.
func (c *Config) AnalysisConfig() *analysis.Config {
	cfg := analysis.DefaultConfig()
	cfg.MinDuration = time.Duration(c.Analysis.MinDurationSeconds * float64(time.Second))
	cfg.UseTags = c.Analysis.UseTags
	cfg.Reconciler.SignalTrustThreshold = c.Analysis.SignalTrustThreshold
	cfg.Reconciler.AgreementToleranceBPM = c.Analysis.AgreementTolerance
	cfg.Reconciler.AgreementBonus = c.Analysis.AgreementBonus
	cfg.Key.NormalizationScale = c.Analysis.KeyNormalization
	return cfg
}

// FFmpegConfig expands the decoder settings.
func (c *Config) FFmpegConfig() *transcode.FFmpegConfig {
	return &transcode.FFmpegConfig{
		FFmpegPath:       c.Decoder.FFmpegPath,
		TargetSampleRate: c.Decoder.TargetSampleRate,
		Timeout:          time.Duration(c.Decoder.TimeoutSeconds) * time.Second,
	}
}
