package server

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/airfoil-tradeoff/internal/config"
	"github.com/iwvelando/airfoil-tradeoff/pkg/constants"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `mapstructure:"address"`
	MaxUploadSize   string               `mapstructure:"maxUploadSize"`
	Logging         config.LoggingConfig `mapstructure:"logging"`
	Analysis        AnalysisDefaults     `mapstructure:"analysis"`
	uploadSizeBytes int64
}

// AnalysisDefaults seeds the wing parameters of requests that leave them
// unset, and toggles the chart endpoint.
type AnalysisDefaults struct {
	OswaldEfficiency *float64  `mapstructure:"oswaldEfficiency" validate:"omitempty,gt=0,lte=1"`
	AspectRatios     []float64 `mapstructure:"aspectRatios" validate:"omitempty,dive,gt=0"`
	Charts           bool      `mapstructure:"charts"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   strconv.FormatInt(constants.DefaultMaxUploadSizeBytes, 10),
		Analysis:        AnalysisDefaults{Charts: true},
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}
}

// LoadConfig loads the server configuration from a YAML file on disk.
func LoadConfig(path string) (*Config, error) {
	return LoadConfigFs(afero.NewOsFs(), path)
}

// LoadConfigFs loads the server configuration from path on fs. A missing
// file yields the defaults; AIRFOIL_* environment variables override both.
func LoadConfigFs(fs afero.Fs, path string) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("address", defaults.Address)
	v.SetDefault("maxUploadSize", defaults.MaxUploadSize)
	v.SetDefault("analysis.charts", defaults.Analysis.Charts)

	if path != "" {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat server config: %w", err)
		}
		if exists {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read server config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the configured upload size.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size > 0 {
		c.uploadSizeBytes = size
		c.MaxUploadSize = strconv.FormatInt(size, 10)
	}
}

// WingParams returns the sweep parameters requests start from.
func (c *Config) WingParams() wing.Params {
	params := wing.DefaultParams()
	if c.Analysis.OswaldEfficiency != nil {
		params.OswaldEfficiency = *c.Analysis.OswaldEfficiency
	}
	if len(c.Analysis.AspectRatios) > 0 {
		params.AspectRatios = append([]float64(nil), c.Analysis.AspectRatios...)
	}
	return params
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	bytes, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = bytes

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(upper[:idx]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch strings.TrimSpace(upper[idx:]) {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1 << 10
	case "M", "MB":
		multiplier = 1 << 20
	case "G", "GB":
		multiplier = 1 << 30
	default:
		return 0, fmt.Errorf("unsupported size unit %q", upper[idx:])
	}

	if n > (1<<63-1)/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
