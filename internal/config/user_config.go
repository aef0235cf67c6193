package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// UserConfig is the machine-wide configuration, shared by every repository
// the tool runs in. Repo-level settings take precedence over it.
type UserConfig struct {
	Upstream UpstreamConfig `toml:"upstream"`
	Branches BranchesConfig `toml:"branches"`
}

type UpstreamConfig struct {
	Branch string   `toml:"branch"`
	URLs   []string `toml:"urls"`
}

type BranchesConfig struct {
	Prefix string `toml:"prefix"`
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Upstream: UpstreamConfig{
			Branch: "main",
		},
		Branches: BranchesConfig{
			Prefix: string(DefaultBranchPrefix),
		},
	}
}

func userConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "pushbot", "config.toml"), nil
}

// LoadUserConfig reads the user configuration, falling back to defaults
// when no file exists yet.
func LoadUserConfig() (*UserConfig, error) {
	path, err := userConfigPath()
	if err != nil {
		return DefaultUserConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultUserConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultUserConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
