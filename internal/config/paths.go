package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names a config file, like --config but from the environment
	EnvConfigPath = "E911AUDIT_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "e911audit.yaml"
	// ConfigDirName holds config.yaml under the XDG and system config roots
	ConfigDirName = "e911audit"
)

// configSource is one step of the lookup order
type configSource struct {
	name string
	path string
	// required sources fail the lookup when the file is missing;
	// the others are skipped
	required bool
}

// lookupOrder returns every place a config file may come from, highest
// priority first. explicit is the --config value and may be empty.
func lookupOrder(explicit string) []configSource {
	sources := []configSource{
		{name: "--config", path: explicit, required: true},
		{name: "$" + EnvConfigPath, path: os.Getenv(EnvConfigPath), required: true},
		{name: "working directory", path: ConfigFileName},
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		sources = append(sources, configSource{name: "$XDG_CONFIG_HOME", path: filepath.Join(xdg, ConfigDirName, "config.yaml")})
	}
	if home := os.Getenv("HOME"); home != "" {
		sources = append(sources, configSource{name: "home", path: filepath.Join(home, ".config", ConfigDirName, "config.yaml")})
	}
	return append(sources, configSource{name: "system", path: filepath.Join("/etc", ConfigDirName, "config.yaml")})
}

// FindConfigPath resolves the config file following the documented order.
// It returns "" when no file exists and nothing was named explicitly.
// A file named by --config or $E911AUDIT_CONFIG that does not exist is an error.
func FindConfigPath(explicit string) (string, error) {
	for _, src := range lookupOrder(explicit) {
		if src.path == "" {
			continue
		}
		info, err := os.Stat(src.path)
		switch {
		case err == nil && !info.IsDir():
			if abs, err := filepath.Abs(src.path); err == nil {
				return abs, nil
			}
			return src.path, nil
		case err == nil:
			if src.required {
				return "", fmt.Errorf("config %s (from %s) is a directory", src.path, src.name)
			}
		case errors.Is(err, os.ErrNotExist):
			if src.required {
				return "", fmt.Errorf("config %s (from %s): %w", src.path, src.name, err)
			}
		default:
			return "", fmt.Errorf("config %s (from %s): %w", src.path, src.name, err)
		}
	}
	return "", nil
}
