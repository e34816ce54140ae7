package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix     = "BIBVALS"
	DefaultDelim  = ","
	DefaultLocale = "en"
)

// Config holds settings that may come from flags, environment or a config file.
type Config struct {
	Delim  string `mapstructure:"delim"`
	Locale string `mapstructure:"locale"`
	// ConfigPath is the config file that was read, empty if none.
	ConfigPath string `mapstructure:"-"`
}

// DefaultPath returns ~/.config/bibvals/config.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "bibvals", "config.yml"), nil
}

// Load resolves configuration. Precedence, highest first: flags that were set
// explicitly, BIBVALS_* environment variables, the config file, defaults.
// A missing default config file (or home directory) is ignored; a missing
// explicit one is an error.
func Load(configPath string, flags *pflag.FlagSet) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("delim", DefaultDelim)
	v.SetDefault("locale", DefaultLocale)

	if flags != nil {
		if f := flags.Lookup("delim"); f != nil {
			if err := v.BindPFlag("delim", f); err != nil {
				return cfg, err
			}
		}
	}

	explicit := configPath != ""
	if !explicit {
		// Without a home directory there is no default file to read.
		if p, err := DefaultPath(); err == nil {
			configPath = p
		}
	}

	read := false
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFound viper.ConfigFileNotFoundError
			if explicit || (!errors.As(err, &configFileNotFound) && !os.IsNotExist(err)) {
				return cfg, fmt.Errorf("reading config %s: %w", configPath, err)
			}
		} else {
			read = true
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if strings.TrimSpace(cfg.Locale) == "" {
		cfg.Locale = DefaultLocale
	}
	if read {
		cfg.ConfigPath = v.ConfigFileUsed()
	}
	return cfg, nil
}
