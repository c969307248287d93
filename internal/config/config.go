// Package config provides configuration management for e911audit.
//
// With no config file the audit runs against the local asterisk binary at
// /usr/sbin/asterisk and prints the plain text report.
//
// Config file locations (priority order):
//  1. --config flag
//  2. $E911AUDIT_CONFIG
//  3. ./e911audit.yaml
//  4. $XDG_CONFIG_HOME/e911audit/config.yaml
//  5. ~/.config/e911audit/config.yaml
//  6. /etc/e911audit/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"e911audit/internal/domain"
)

// ReportFormats lists the supported report formats
var ReportFormats = []string{"text", "json", "yaml"}

// LogLevels lists the accepted log level names
var LogLevels = []string{"debug", "info", "warn", "error"}

// Load resolves the config file (see FindConfigPath) and loads it.
// explicit is the --config value; defaults are returned when no file is found.
func Load(explicit string) (*Config, string, error) {
	path, err := FindConfigPath(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Source == "" {
		c.Source = SourceLocal
	}
	if c.Asterisk.Binary == "" {
		c.Asterisk.Binary = "/usr/sbin/asterisk"
	}
	if c.Asterisk.Timeout == 0 {
		c.Asterisk.Timeout = Duration(30 * time.Second)
	}
	if c.SSH.Port == 0 {
		c.SSH.Port = 22
	}
	if c.CIDStore.Backend == "" {
		c.CIDStore.Backend = CIDBackendCLI
	}
	if c.Report.Format == "" {
		c.Report.Format = "text"
	}
	if c.Report.AddressOrder == "" {
		c.Report.AddressOrder = string(domain.AddressOrderLexical)
	}
	if c.Report.NullMarker == "" {
		c.Report.NullMarker = "None"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Validate checks that the settings are consistent
func (c *Config) Validate() error {
	var errs []error

	if !c.Source.Valid() {
		errs = append(errs, fmt.Errorf("unknown source %q (want local, ssh or file)", c.Source))
	}

	switch c.Source {
	case SourceSSH:
		if c.SSH.Host == "" {
			errs = append(errs, errors.New("ssh.host is required for source ssh"))
		}
		if c.SSH.User == "" {
			errs = append(errs, errors.New("ssh.user is required for source ssh"))
		}
		if c.SSH.KeyPath == "" && c.SSH.Password == "" {
			errs = append(errs, errors.New("ssh.key_path or ssh.password is required for source ssh"))
		}
	case SourceFile:
		if c.Capture.Dir == "" {
			errs = append(errs, errors.New("capture.dir is required for source file"))
		}
	}

	if !c.CIDStore.Backend.Valid() {
		errs = append(errs, fmt.Errorf("unknown cid_store.backend %q (want cli or sqlite)", c.CIDStore.Backend))
	}
	if c.CIDStore.Backend == CIDBackendSQLite && c.CIDStore.Path == "" {
		errs = append(errs, errors.New("cid_store.path is required for backend sqlite"))
	}

	if !slices.Contains(ReportFormats, c.Report.Format) {
		errs = append(errs, fmt.Errorf("unknown report.format %q (want %s)", c.Report.Format, strings.Join(ReportFormats, ", ")))
	}
	if !domain.AddressOrder(c.Report.AddressOrder).Valid() {
		errs = append(errs, fmt.Errorf("unknown report.address_order %q (want lexical or numeric)", c.Report.AddressOrder))
	}
	if domain.IsNumeric(c.Report.NullMarker) {
		errs = append(errs, fmt.Errorf("report.null_marker %q would read as an emergency CID", c.Report.NullMarker))
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	if c.Asterisk.Timeout < 0 {
		errs = append(errs, errors.New("asterisk.timeout must not be negative"))
	}

	return errors.Join(errs...)
}

// AddressOrder returns the configured section ordering
func (c *Config) AddressOrder() domain.AddressOrder {
	return domain.ParseAddressOrder(c.Report.AddressOrder)
}

// Summary returns a one-line config summary for logging
func (c *Config) Summary() string {
	summary := fmt.Sprintf("source=%s cid_store=%s format=%s order=%s",
		c.Source, c.CIDStore.Backend, c.Report.Format, c.Report.AddressOrder)
	switch c.Source {
	case SourceSSH:
		summary += fmt.Sprintf(" host=%s:%d", c.SSH.Host, c.SSH.Port)
	case SourceFile:
		summary += fmt.Sprintf(" dir=%s", c.Capture.Dir)
	default:
		summary += fmt.Sprintf(" binary=%s", c.Asterisk.Binary)
	}
	return summary
}
