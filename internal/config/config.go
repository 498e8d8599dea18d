// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the simulation file.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for one amortization comparison.
type Configuration struct {
	Loan    Loan          `yaml:"loan" json:"loan"`
	Fees    Fees          `yaml:"fees,omitempty" json:"fees,omitempty"`
	Income  float64       `yaml:"income,omitempty" json:"income,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty" json:"-"`
	Output  OutputConfig  `yaml:"output,omitempty" json:"-"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format      string `yaml:"format,omitempty"` // pretty, csv, json, yaml, report
	ExcerptRows int    `yaml:"excerptRows,omitempty"`
}

// Fees are the financing costs outside the installments. Tax and Charges are
// paid at origination; Insurance is charged every period.
type Fees struct {
	Tax       float64 `yaml:"tax,omitempty" json:"tax,omitempty"`
	Charges   float64 `yaml:"charges,omitempty" json:"charges,omitempty"`
	Insurance float64 `yaml:"insurance,omitempty" json:"insurance,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can override it during
	// Unmarshal even when the file omits it.
	v.SetDefault("loan.principal", 0)
	v.SetDefault("loan.termMonths", 0)
	v.SetDefault("loan.ratePercent", 0)
	v.SetDefault("loan.graceMonths", 0)
	v.SetDefault("loan.inflationPercent", 0)
	v.SetDefault("loan.extraAmount", 0)
	v.SetDefault("loan.extraMonth", 0)
	v.SetDefault("loan.recurringExtra", 0)
	v.SetDefault("fees.tax", 0)
	v.SetDefault("fees.charges", 0)
	v.SetDefault("fees.insurance", 0)
	v.SetDefault("income", 0)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	v.SetDefault("output.excerptRows", constants.DefaultExcerptRows)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with AMORTIZATION_
// (e.g. AMORTIZATION_LOAN_PRINCIPAL) override file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// OutputFormat returns the configured output format, the override when set,
// or pretty.
func (c *Configuration) OutputFormat(override string) (string, error) {
	format := c.Output.Format
	if override != "" {
		format = override
	}
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// ExcerptRows is the number of leading and trailing ledger rows shown by the
// pretty output. Zero or less shows every row.
func (c *Configuration) ExcerptRows() int {
	return c.Output.ExcerptRows
}
