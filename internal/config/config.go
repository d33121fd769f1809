// Package config provides tool configuration for prox2vmx.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pvetools/prox2vmx/internal/qemuimg"
)

// Config holds all prox2vmx settings.
type Config struct {
	// ConfDir is the qemu-server configuration directory on the PVE host.
	ConfDir string `mapstructure:"conf_dir"`

	// OutputDir receives the converted VM. Empty means a per-run
	// <name>_<timestamp> directory under the working directory.
	OutputDir string `mapstructure:"output_dir"`

	// QemuImg is the qemu-img binary used for disk conversion.
	QemuImg string `mapstructure:"qemu_img"`

	// Pvesm is the PVE storage manager binary used to resolve volume paths.
	Pvesm string `mapstructure:"pvesm"`

	// VMDKOptions are passed to qemu-img convert -o.
	VMDKOptions string `mapstructure:"vmdk_options"`

	// HWVersion is the virtualHW.version written into descriptors.
	HWVersion string `mapstructure:"hw_version"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is text or json.
	LogFormat string `mapstructure:"log_format"`
}

// DefaultConfig returns a Config with sensible defaults for a PVE host.
func DefaultConfig() *Config {
	return &Config{
		ConfDir:     "/etc/pve/qemu-server",
		OutputDir:   "",
		QemuImg:     qemuimg.DefaultBinary,
		Pvesm:       "pvesm",
		VMDKOptions: qemuimg.DefaultVMDKOptions,
		HWVersion:   "19",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load reads configuration from defaults, an optional YAML config file and
// PROX2VMX_* environment variables. When cfgFile is empty the user and
// system config directories are searched; a missing file there is fine.
// An explicitly named file must load.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("conf_dir", defaults.ConfDir)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("qemu_img", defaults.QemuImg)
	v.SetDefault("pvesm", defaults.Pvesm)
	v.SetDefault("vmdk_options", defaults.VMDKOptions)
	v.SetDefault("hw_version", defaults.HWVersion)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if paths, err := GetPaths(); err == nil {
			v.AddConfigPath(paths.ConfigDir)
			v.AddConfigPath(paths.SystemConfigDir)
		}
	}

	// Environment variable support: PROX2VMX_CONF_DIR, PROX2VMX_QEMU_IMG, etc.
	v.SetEnvPrefix("PROX2VMX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if cfgFile != "" || !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
