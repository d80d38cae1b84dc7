package config

import (
	"bytes"
	"os"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// SaveConfig writes cfg to its home's config path, creating the parent
// directory when needed.
func SaveConfig(cfg IHome) error {
	cfgPath, err := cfg.ConfigPath()
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	buf.WriteString("# marketplace daemon configuration\n\n")
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(path.Dir(cfgPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(cfgPath, buf.Bytes(), 0644)
}

// LoadConfig reads the TOML file at cfgPath, expanding a leading ~.
func LoadConfig(cfgPath string, cfg IHome) error {
	expanded, err := homedir.Expand(cfgPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, cfg)
}
