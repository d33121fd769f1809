package config

import (
	"os"
	"path/filepath"
)

// Paths holds the directories searched for a prox2vmx config file.
type Paths struct {
	// ConfigDir is the per-user config directory,
	// ~/.config/prox2vmx (or XDG_CONFIG_HOME).
	ConfigDir string

	// SystemConfigDir is the host-wide config directory.
	SystemConfigDir string

	// ConfigFile is the default per-user config file path.
	ConfigFile string
}

// GetPaths returns the config search paths.
func GetPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	p := &Paths{SystemConfigDir: "/etc/prox2vmx"}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		p.ConfigDir = filepath.Join(xdgConfig, "prox2vmx")
	} else {
		p.ConfigDir = filepath.Join(home, ".config", "prox2vmx")
	}
	p.ConfigFile = filepath.Join(p.ConfigDir, "config.yaml")

	return p, nil
}
