// Package config loads freqresp settings from defaults, an optional YAML
// file, FREQRESP_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-freqresp/dsp/rfft"
	"github.com/cwbudde/algo-freqresp/internal/report"
	"github.com/cwbudde/algo-freqresp/measure/response"
)

// EnvPrefix is prepended to upper-cased keys to form environment variables,
// e.g. FREQRESP_FFT_LOG2.
const EnvPrefix = "FREQRESP"

// Keys shared by viper, the YAML file and flag bindings.
const (
	KeyLogLevel   = "log_level"
	KeyOutput     = "output"
	KeyFFTLog2    = "fft_log2"
	KeySampleRate = "sample_rate"
	KeyMinFreq    = "min_freq"
	KeyMaxFreq    = "max_freq"
	KeyPoints     = "points"
	KeyBackend    = "backend"
	KeySmooth     = "smooth"
)

var ErrInvalid = errors.New("config: invalid value")

// Config is the decoded application configuration.
type Config struct {
	LogLevel   string  `mapstructure:"log_level" yaml:"log_level"`
	Output     string  `mapstructure:"output" yaml:"output"`
	FFTLog2    int     `mapstructure:"fft_log2" yaml:"fft_log2"`
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
	MinFreq    float64 `mapstructure:"min_freq" yaml:"min_freq"`
	MaxFreq    float64 `mapstructure:"max_freq" yaml:"max_freq"`
	Points     int     `mapstructure:"points" yaml:"points"`
	Backend    string  `mapstructure:"backend" yaml:"backend"`
	// Smooth is the 1/N-octave smoothing fraction; 0 disables smoothing.
	Smooth int `mapstructure:"smooth" yaml:"smooth"`
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults installs the default value of every key.
func SetDefaults(v *viper.Viper) {
	def := response.DefaultConfig()

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyOutput, string(report.FormatTable))
	v.SetDefault(KeyFFTLog2, def.Log2Length)
	v.SetDefault(KeySampleRate, def.SampleRate)
	v.SetDefault(KeyMinFreq, def.MinFreq)
	v.SetDefault(KeyMaxFreq, def.MaxFreq)
	v.SetDefault(KeyPoints, def.Points)
	v.SetDefault(KeyBackend, def.Backend.String())
	v.SetDefault(KeySmooth, 0)
}

// ReadFile merges a YAML config file into v. An empty path searches the
// working directory and the user config directory for freqresp.yaml; not
// finding one there is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("freqresp")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "freqresp"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field, including the derived analyzer settings.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if _, err := report.ParseFormat(c.Output); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Smooth < 0 {
		return fmt.Errorf("%w: smooth must be >= 0: %d", ErrInvalid, c.Smooth)
	}
	if _, err := c.Response(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Response converts the analysis settings to a validated response.Config.
func (c Config) Response() (response.Config, error) {
	backend, err := rfft.ParseBackend(c.Backend)
	if err != nil {
		return response.Config{}, err
	}

	rc := response.Config{
		Log2Length: c.FFTLog2,
		SampleRate: c.SampleRate,
		MinFreq:    c.MinFreq,
		MaxFreq:    c.MaxFreq,
		Points:     c.Points,
		Backend:    backend,
	}
	if err := rc.Validate(); err != nil {
		return response.Config{}, err
	}
	return rc, nil
}

// Level returns the parsed log level; invalid names fall back to info.
func (c Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Format returns the parsed output format; invalid names fall back to table.
func (c Config) Format() report.Format {
	f, err := report.ParseFormat(c.Output)
	if err != nil {
		return report.FormatTable
	}
	return f
}
