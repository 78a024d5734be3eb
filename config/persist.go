package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/arbgen/errors"
)

const backupSuffix = ".back1"

// WriteDefault writes the default configuration to path. An existing file is
// kept unless force is set, in which case it is first copied to path.back1.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			return errors.WithHint(
				errors.Newf("%s already exists", path),
				"pass --force to overwrite it (the old file is kept as "+path+backupSuffix+")")
		}
		if err := backup(path); err != nil {
			return err
		}
	}

	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// Marshal renders cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

func backup(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(path+backupSuffix, content, 0644); err != nil {
		return errors.Wrapf(err, "failed to create %s", backupSuffix)
	}
	return nil
}
