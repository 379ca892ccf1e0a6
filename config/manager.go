package config

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// ConfigName is the file searched for in the working directory when no
// explicit path is given.
const ConfigName = "linkrelay"

// Manager resolves Settings from defaults, an optional config file and the
// environment.
type Manager struct {
	fs   afero.Fs
	path string
}

// NewManager returns a manager reading from fs. An empty path searches the
// working directory for linkrelay.{yaml,json,toml} and tolerates its absence;
// an explicit path must exist.
func NewManager(fs afero.Fs, path string) *Manager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Manager{fs: fs, path: path}
}

// Load reads and validates the current settings.
func (m *Manager) Load() (*Settings, error) {
	v := viper.New()
	v.SetFs(m.fs)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()

	for _, f := range Defaults {
		v.SetDefault(f.Key, f.Value)
	}

	if m.path != "" {
		v.SetConfigFile(m.path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", m.path, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// DefaultSettings returns the registered defaults without consulting any
// file or environment variable.
func DefaultSettings() Settings {
	v := viper.New()
	for _, f := range Defaults {
		v.SetDefault(f.Key, f.Value)
	}
	var settings Settings
	_ = v.Unmarshal(&settings)
	return settings
}
