// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/airfoil-tradeoff/pkg/configprocessor"
	"github.com/iwvelando/airfoil-tradeoff/pkg/constants"
	"github.com/iwvelando/airfoil-tradeoff/pkg/palette"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for airfoil-tradeoff.
type Configuration struct {
	SourceDirectory string        `yaml:"sourceDirectory,omitempty" mapstructure:"sourceDirectory"`
	Airfoils        []Airfoil     `yaml:"airfoils" mapstructure:"airfoils" validate:"dive"`
	Wing            WingConfig    `yaml:"wing" mapstructure:"wing"`
	Logging         LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output          OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `yaml:"format,omitempty" mapstructure:"format" validate:"omitempty,oneof=json console"`
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"`
}

// OutputConfig holds output configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv
	Directory string `yaml:"directory,omitempty" mapstructure:"directory"`
	Charts    *bool  `yaml:"charts,omitempty" mapstructure:"charts"`
	Workbook  *bool  `yaml:"workbook,omitempty" mapstructure:"workbook"`
}

// ChartsEnabled reports whether PNG charts should be written (default true).
func (o OutputConfig) ChartsEnabled() bool {
	return o.Charts == nil || *o.Charts
}

// WorkbookEnabled reports whether the XLSX workbook should be written (default true).
func (o OutputConfig) WorkbookEnabled() bool {
	return o.Workbook == nil || *o.Workbook
}

// Airfoil names one polar table to compare.
type Airfoil struct {
	Label string `yaml:"label" mapstructure:"label" validate:"required"`
	File  string `yaml:"file" mapstructure:"file" validate:"required"`
	Color string `yaml:"color,omitempty" mapstructure:"color"`
}

// WingConfig selects the design point and the aspect-ratio sweep.
type WingConfig struct {
	// Airfoil is the label of the dataset the design point is read from.
	Airfoil     string   `yaml:"airfoil,omitempty" mapstructure:"airfoil"`
	DesignAngle *float64 `yaml:"designAngle,omitempty" mapstructure:"designAngle"`
	// ClDesign and CdDesign override the dataset lookup when both are set.
	ClDesign *float64 `yaml:"clDesign,omitempty" mapstructure:"clDesign"`
	CdDesign *float64 `yaml:"cdDesign,omitempty" mapstructure:"cdDesign"`
	// OswaldEfficiency is nil when unset; an explicit 0 is rejected.
	OswaldEfficiency *float64  `yaml:"oswaldEfficiency,omitempty" mapstructure:"oswaldEfficiency" validate:"omitempty,gt=0,lte=1"`
	AspectRatios     []float64 `yaml:"aspectRatios,omitempty" mapstructure:"aspectRatios" validate:"omitempty,dive,gt=0"`
}

// Angle returns the design angle, defaulting to 5 degrees.
func (w WingConfig) Angle() float64 {
	if w.DesignAngle == nil {
		return constants.DefaultDesignAngle
	}
	return *w.DesignAngle
}

// HasDesignOverride reports whether both explicit design coefficients are set.
func (w WingConfig) HasDesignOverride() bool {
	return w.ClDesign != nil && w.CdDesign != nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()

	if err := configuration.Validate(); err != nil {
		return nil, err
	}

	return &configuration, nil
}

// ApplyDefaults fills unset optional values.
func (c *Configuration) ApplyDefaults() {
	if c.Wing.OswaldEfficiency == nil {
		e := constants.DefaultOswaldEfficiency
		c.Wing.OswaldEfficiency = &e
	}
	if len(c.Wing.AspectRatios) == 0 {
		c.Wing.AspectRatios = constants.DefaultAspectRatios()
	}
	if c.Output.Directory == "" {
		c.Output.Directory = constants.DefaultOutputDirectory
	}
}

// Validate checks structural constraints and returns the first violations
// as a single error.
func (c *Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ValidateConfiguration performs semantic validation of the configuration
// and returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	airfoils := make([]configprocessor.AirfoilInfo, 0, len(c.Airfoils))
	for _, airfoil := range c.Airfoils {
		airfoils = append(airfoils, configprocessor.AirfoilInfo{
			Label: airfoil.Label,
			File:  airfoil.File,
			Color: airfoil.Color,
		})
	}

	wingInfo := configprocessor.WingInfo{
		Airfoil:      c.Wing.Airfoil,
		HasCl:        c.Wing.ClDesign != nil,
		HasCd:        c.Wing.CdDesign != nil,
		AspectRatios: c.Wing.AspectRatios,
	}
	if c.Wing.CdDesign != nil {
		wingInfo.CdDesign = *c.Wing.CdDesign
	}

	processor := configprocessor.NewProcessor(palette.Known)
	return processor.ValidateConfiguration(airfoils, wingInfo)
}
