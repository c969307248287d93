package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Source   SourceMode     `yaml:"source"`
	Asterisk AsteriskConfig `yaml:"asterisk"`
	SSH      SSHConfig      `yaml:"ssh"`
	Capture  CaptureConfig  `yaml:"capture"`
	CIDStore CIDStoreConfig `yaml:"cid_store"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
	// Strict fails the run when a console command fails instead of treating
	// its output as empty
	Strict bool `yaml:"strict"`
}

// AsteriskConfig describes how to reach the asterisk console
type AsteriskConfig struct {
	Binary  string   `yaml:"binary"`
	Timeout Duration `yaml:"timeout"`
}

// SSHConfig holds remote console settings (source: ssh)
type SSHConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	KeyPath    string `yaml:"key_path,omitempty"`
	Passphrase string `yaml:"passphrase,omitempty"`
	Password   string `yaml:"password,omitempty"`
	KnownHosts string `yaml:"known_hosts,omitempty"`
}

// CaptureConfig points at previously captured console output (source: file)
type CaptureConfig struct {
	Dir string `yaml:"dir"`
}

// CIDStoreConfig selects where emergency CIDs are read from
type CIDStoreConfig struct {
	Backend CIDBackend `yaml:"backend"`
	// Path to astdb.sqlite3 (backend: sqlite)
	Path string `yaml:"path,omitempty"`
}

// ReportConfig controls report rendering
type ReportConfig struct {
	Format       string `yaml:"format"`
	AddressOrder string `yaml:"address_order"`
	NullMarker   string `yaml:"null_marker"`
	Findings     bool   `yaml:"findings"`
}

// LogConfig controls diagnostic logging (always on stderr)
type LogConfig struct {
	Level string `yaml:"level"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
