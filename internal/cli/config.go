package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/puzzler/internal/paths"
	"github.com/mesh-intelligence/puzzler/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "PUZZLER"
)

// Config keys, matching the mapstructure tags on types.Config.
const (
	cfgKeyDictionary  = "dictionary"
	cfgKeyIterations  = "iterations"
	cfgKeyMaxAttempts = "max_attempts"
	cfgKeySeed        = "seed"
	cfgKeyRecord      = "record"
	cfgKeyDataDir     = "data_dir"
)

// newViper returns a Viper reading config.yaml from configDir and
// PUZZLER_* environment variables on top of the package defaults.
// A missing config.yaml is not an error.
func newViper(configDir string) (*viper.Viper, error) {
	def := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyDictionary, def.Dictionary)
	v.SetDefault(cfgKeyIterations, def.Iterations)
	v.SetDefault(cfgKeyMaxAttempts, def.MaxAttempts)
	v.SetDefault(cfgKeySeed, def.Seed)
	v.SetDefault(cfgKeyRecord, def.Record)
	v.SetDefault(cfgKeyDataDir, def.DataDir)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// bindFlags binds each named flag to its config key so that a flag set on
// the command line wins over the environment and config.yaml.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// decodeConfig unmarshals v into a validated types.Config.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether a file was written.
func writeConfigIfMissing(configDir string, cfg types.Config) (bool, error) {
	path := filepath.Join(configDir, paths.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	header := []byte("# puzzler configuration\n# Flags and PUZZLER_* environment variables override these values.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
