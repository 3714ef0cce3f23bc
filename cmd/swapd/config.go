package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/iov-one/tokenswap/errors"
)

const (
	envPrefix      = "SWAPD"
	configFileName = "config.yaml"
)

// Config is the runtime configuration of swapd. Values are read from the
// defaults, then $SWAPD_HOME/config.yaml, then SWAPD_* environment
// variables, the last one winning.
type Config struct {
	Home        string `mapstructure:"home"`
	DBDir       string `mapstructure:"db_dir"`
	LogLevel    string `mapstructure:"log_level"`
	SyncWrites  bool   `mapstructure:"sync_writes"`
	DebugErrors bool   `mapstructure:"debug_errors"`
}

func defaultHome() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".swapd")
	}
	return ".swapd"
}

// newViper returns a viper instance with defaults and environment binding
// set up. home is used unless SWAPD_HOME is set.
func newViper(home string) *viper.Viper {
	v := viper.New()
	v.SetDefault("home", home)
	v.SetDefault("db_dir", "data")
	v.SetDefault("log_level", "info")
	v.SetDefault("sync_writes", true)
	v.SetDefault("debug_errors", false)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the configuration. A missing config file is not an
// error.
func LoadConfig(v *viper.Viper) (*Config, error) {
	home := v.GetString("home")
	v.SetConfigFile(filepath.Join(home, configFileName))
	switch err := v.ReadInConfig(); err.(type) {
	case nil, viper.ConfigFileNotFoundError:
	default:
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "config file: %s", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "config: %s", err)
	}
	if cfg.Home == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "home")
	}
	if !filepath.IsAbs(cfg.DBDir) {
		cfg.DBDir = filepath.Join(cfg.Home, cfg.DBDir)
	}
	return &cfg, nil
}

// WriteConfig stores the current values in the config file of home.
func WriteConfig(v *viper.Viper, cfg *Config) error {
	if err := os.MkdirAll(cfg.Home, 0o755); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	out := viper.New()
	out.Set("db_dir", v.GetString("db_dir"))
	out.Set("log_level", cfg.LogLevel)
	out.Set("sync_writes", cfg.SyncWrites)
	out.Set("debug_errors", cfg.DebugErrors)
	if err := out.WriteConfigAs(filepath.Join(cfg.Home, configFileName)); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}
