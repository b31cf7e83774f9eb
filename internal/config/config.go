// Package config loads the application configuration: the issuer record
// printed on every invoice, the paths the session works with, and the
// renderer settings. Values come from an invoicer.yaml file (working
// directory or $HOME/.invoicer) with INVOICER_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"invoicer/internal/logger"
)

// DefaultConfigFile is where Save writes and where Load looks first.
const DefaultConfigFile = "invoicer.yaml"

// Config is the full application configuration.
type Config struct {
	Issuer Issuer
	Store  StoreConfig
	Render RenderConfig
	Log    LogConfig
}

// Issuer identifies the party issuing invoices, as printed on the document.
type Issuer struct {
	Name          string
	Address       string // lines separated by `\\` for the template
	Phone         string
	Email         string
	AccountNumber string
	SortCode      string // exactly 6 digits
}

// StoreConfig locates the customer account store.
type StoreConfig struct {
	Path string
}

// RenderConfig carries the document-generation settings.
type RenderConfig struct {
	WorkspaceDir   string // scoped temporary workspace, one generation at a time
	TemplatePath   string // document template copied into the workspace
	OutputDir      string // destination for finished invoices
	Command        string // external renderer binary
	OutputExt      string // the renderer's native output extension
	MinTableRows   int    // blank-row padding for short invoices, presentation only
	TimeoutSeconds int    // bound on the renderer run
}

// Timeout returns the renderer bound as a duration.
func (r RenderConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// LogConfig mirrors logger.LogConfig so the whole configuration lives in
// one file.
type LogConfig struct {
	Level      string
	Format     string
	TimeFormat string
	Output     string
}

// Load reads the configuration. A missing config file is fine (defaults
// plus environment overrides apply) but a malformed one is an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("invoicer")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.invoicer")

	v.SetEnvPrefix("INVOICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Empty issuer defaults register the keys so INVOICER_ISSUER_* overrides
	// reach Unmarshal even without a config file.
	v.SetDefault("issuer.name", "")
	v.SetDefault("issuer.address", "")
	v.SetDefault("issuer.phone", "")
	v.SetDefault("issuer.email", "")
	v.SetDefault("issuer.accountnumber", "")
	v.SetDefault("issuer.sortcode", "")
	v.SetDefault("store.path", "customers.json")
	v.SetDefault("render.workspacedir", "TEMPfiles")
	v.SetDefault("render.templatepath", "invoiceTemplate.tex")
	v.SetDefault("render.outputdir", ".")
	v.SetDefault("render.command", "pdflatex")
	v.SetDefault("render.outputext", ".pdf")
	v.SetDefault("render.mintablerows", 8)
	v.SetDefault("render.timeoutseconds", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.timeformat", time.RFC3339)
	v.SetDefault("log.output", "stderr")
}

// validate checks the parts of the configuration that can be wrong without
// the session noticing until generation time. The issuer record is allowed
// to be empty (the configure command fills it in); a non-empty sort code
// must be well formed.
func (c *Config) validate() error {
	if c.Issuer.SortCode != "" {
		if err := ValidateSortCode(c.Issuer.SortCode); err != nil {
			return err
		}
	}
	if c.Render.MinTableRows < 0 {
		return fmt.Errorf("render.mintablerows must not be negative")
	}
	if c.Render.TimeoutSeconds <= 0 {
		return fmt.Errorf("render.timeoutseconds must be positive")
	}
	return nil
}

// Validate checks that the issuer record is complete enough to put on an
// invoice. Called before generation, not at load time.
func (i Issuer) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("issuer name is required")
	}
	if i.AccountNumber == "" {
		return fmt.Errorf("issuer account number is required")
	}
	return ValidateSortCode(i.SortCode)
}

// ValidateSortCode enforces the exactly-6-digits rule.
func ValidateSortCode(code string) error {
	if len(code) != 6 {
		return fmt.Errorf("sort code must be exactly 6 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("sort code must be exactly 6 digits, got %q", code)
		}
	}
	return nil
}

// FormattedSortCode renders the sort code as three 2-digit groups,
// e.g. "123456" -> "12--34--56". Call Validate first.
func (i Issuer) FormattedSortCode() string {
	c := i.SortCode
	return fmt.Sprintf("%s--%s--%s", c[0:2], c[2:4], c[4:6])
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		TimeFormat: c.Log.TimeFormat,
		Output:     c.Log.Output,
	}
}

// Save writes the configuration to path (DefaultConfigFile when empty).
// Used by the configure command after collecting the issuer record.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigFile
	}

	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("issuer.name", c.Issuer.Name)
	v.Set("issuer.address", c.Issuer.Address)
	v.Set("issuer.phone", c.Issuer.Phone)
	v.Set("issuer.email", c.Issuer.Email)
	v.Set("issuer.accountnumber", c.Issuer.AccountNumber)
	v.Set("issuer.sortcode", c.Issuer.SortCode)
	v.Set("store.path", c.Store.Path)
	v.Set("render.workspacedir", c.Render.WorkspaceDir)
	v.Set("render.templatepath", c.Render.TemplatePath)
	v.Set("render.outputdir", c.Render.OutputDir)
	v.Set("render.command", c.Render.Command)
	v.Set("render.outputext", c.Render.OutputExt)
	v.Set("render.mintablerows", c.Render.MinTableRows)
	v.Set("render.timeoutseconds", c.Render.TimeoutSeconds)
	v.Set("log.level", c.Log.Level)
	v.Set("log.format", c.Log.Format)
	v.Set("log.timeformat", c.Log.TimeFormat)
	v.Set("log.output", c.Log.Output)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
