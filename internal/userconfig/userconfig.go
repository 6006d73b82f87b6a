package userconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"github.com/minicross/mc/internal/dockerfile"
	"github.com/minicross/mc/internal/mixin"
	"gopkg.in/yaml.v3"
)

// File name of per-directory override files.
const configFile = ".mc2config.yaml"

// Runtime-parameter overrides merged from all configuration layers.
type Config struct {
	Publish []mixin.Publish   `yaml:"publish"`
	Volume  []mixin.Volume    `yaml:"volume"`
	Env     map[string]string `yaml:"env"`
}

// Loads and merges every existing configuration layer.
//
// Missing files are skipped; an existing file that fails to parse is an
// error naming the file.
func Load() (*Config, error) {
	return loadFiles(files())
}

// Returns the configuration file paths in layering order: global layers
// first, then project-local ones.
func files() []string {
	var paths []string

	if xdg.Home != "" {
		paths = append(paths, filepath.Join(xdg.Home, configFile))
	}
	paths = append(paths, filepath.Join(xdg.ConfigHome, "mc2", "config.yaml"))

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths,
			filepath.Join(cwd, configFile),
			filepath.Join(cwd, ".mc2", configFile),
		)
	}

	return paths
}

// Reads and merges the given configuration files in order.
//
// Relative volume host paths are anchored at their config file's directory,
// so a layer behaves the same regardless of the invocation directory.
func loadFiles(paths []string) (*Config, error) {
	merged := &Config{Env: make(map[string]string)}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading user config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("parsing user config %s: %w", path, err)
		}

		for i := range cfg.Volume {
			if !filepath.IsAbs(cfg.Volume[i].HostPath) {
				cfg.Volume[i].HostPath = filepath.Join(filepath.Dir(path), cfg.Volume[i].HostPath)
			}
		}

		merged.Publish = append(merged.Publish, cfg.Publish...)
		merged.Volume = append(merged.Volume, cfg.Volume...)
		for k, v := range cfg.Env {
			merged.Env[k] = v
		}
	}

	return merged, nil
}

// Appends the merged overrides to the specification's runtime parameters.
//
// Env keys are applied in sorted order so forwarded flags are deterministic.
func (c *Config) Apply(df *dockerfile.Dockerfile) {
	df.AddPublishes(c.Publish...)
	df.AddVolumes(c.Volume...)

	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		df.AddEnv(k, c.Env[k])
	}
}
