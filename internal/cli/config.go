package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds CLI configuration
type Config struct {
	Store    string
	Output   string
	LogLevel string
	Verbose  bool
}

// Config keys, shared by flags, MAFIA_* environment variables and the
// optional config file
const (
	keyStore    = "store"
	keyOutput   = "output"
	keyLogLevel = "log-level"
	keyVerbose  = "verbose"
)

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Store:    "mafia.json",
		Output:   "text",
		LogLevel: "warn",
		Verbose:  false,
	}
}

// newViper creates a viper instance reading MAFIA_* environment variables
func newViper() *viper.Viper {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("MAFIA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyStore, defaults.Store)
	v.SetDefault(keyOutput, defaults.Output)
	v.SetDefault(keyLogLevel, defaults.LogLevel)
	v.SetDefault(keyVerbose, defaults.Verbose)
	return v
}

// bindFlags lets command-line flags override the environment
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{keyStore, keyOutput, keyLogLevel, keyVerbose} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig resolves the configuration. configFile is optional.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Store:    v.GetString(keyStore),
		Output:   v.GetString(keyOutput),
		LogLevel: v.GetString(keyLogLevel),
		Verbose:  v.GetBool(keyVerbose),
	}
	if cfg.Output != "text" && cfg.Output != "json" {
		return nil, fmt.Errorf("invalid output format %q: must be text or json", cfg.Output)
	}
	return cfg, nil
}

// Level returns the slog level for the configuration
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}
