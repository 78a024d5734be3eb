package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/arbgen/errors"
)

// Sources says where Load looks. Zero values mean the working directory and
// the user's home directory.
type Sources struct {
	// File, when set, is the only config file read. It must exist.
	File string
	// Dir is where the upward search for arbgen.toml starts.
	Dir string
	// Home holds .arbgen/arbgen.toml.
	Home string
}

// Load resolves configuration. Precedence, lowest to highest: defaults,
// ~/.arbgen/arbgen.toml, the nearest arbgen.toml at or above Dir, ARBGEN_*
// environment variables.
func Load(src Sources) (*Config, error) {
	v := newViper()

	var files []string
	if src.File != "" {
		if err := merge(v, src.File); err != nil {
			return nil, err
		}
		files = append(files, src.File)
	} else {
		for _, path := range candidates(src) {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := merge(v, path); err != nil {
				return nil, err
			}
			files = append(files, path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	cfg.Files = files

	if err := cfg.Validate(); err != nil {
		if len(files) > 0 {
			return nil, errors.WithHintf(err, "check %s", files[len(files)-1])
		}
		return nil, err
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ARBGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// merge reads one TOML file into v. Values merged later win, environment
// variables still win over all files.
func merge(v *viper.Viper, path string) error {
	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("toml")
	if err := file.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := v.MergeConfigMap(file.AllSettings()); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", path)
	}
	return nil
}

// candidates lists user then project config paths.
func candidates(src Sources) []string {
	home := src.Home
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	var paths []string
	if home != "" {
		paths = append(paths, filepath.Join(home, ".arbgen", FileName))
	}
	if project := FindProjectConfig(src.Dir); project != "" {
		paths = append(paths, project)
	}
	return paths
}

// FindProjectConfig searches for arbgen.toml by walking up the directory tree
// from dir (the working directory when empty). Returns "" if none is found.
func FindProjectConfig(dir string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}
