package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileName = "plstats/config.yaml"

// Config carries the settings shared by all commands.
type Config struct {
	Model   string `mapstructure:"model"`
	Limit   int    `mapstructure:"limit"`
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
}

var configKeys = []string{"model", "limit", "format", "verbose"}

// LoadConfig merges settings with the precedence
// flags > env > config file > defaults.
//
// Only flags which were set on the command line win over the other sources.
// It returns the loaded config and the path of the config file, which is
// empty if none was found.
func LoadConfig(explicitConfigPath string, flags *pflag.FlagSet) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PLSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	if flags != nil {
		for _, key := range configKeys {
			if f := flags.Lookup(key); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, configPath, fmt.Errorf("binding flag %s: %w", key, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Limit < 0 {
		return nil, configPath, fmt.Errorf("limit must not be negative, got %d", cfg.Limit)
	}
	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model", "model.yaml")
	v.SetDefault("limit", 0)
	v.SetDefault("format", "yaml")
	v.SetDefault("verbose", false)
}

// findConfigFile validates an explicit path or searches the XDG config
// directories. A missing discovered file is not an error.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}
	path, err := xdg.SearchConfigFile(configFileName)
	if err != nil {
		return "", nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return path, nil
}
