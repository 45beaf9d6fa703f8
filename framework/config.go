package framework

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig holds run options that can be kept in a YAML file instead of being passed as
// flags each time.
type RunConfig struct {
	Run      []string `yaml:"run"`
	Skip     []string `yaml:"skip"`
	Match    []string `yaml:"match"`
	Exclude  []string `yaml:"exclude"`
	Debug    bool     `yaml:"debug"`
	DebugAll bool     `yaml:"debugAll"`
	List     bool     `yaml:"list"`
}

// LoadRunConfig reads a RunConfig from path. Unknown keys are an error so that a misspelled
// option is not silently ignored. An empty path yields the zero config.
func LoadRunConfig(path string) (RunConfig, error) {
	var cfg RunConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the run config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse the run config %s: %w", path, err)
	}
	return cfg, nil
}

// Filters compiles the patterns of the config.
func (c RunConfig) Filters() (Filters, error) {
	var f Filters
	for _, p := range c.Run {
		if err := f.Regex.MustMatch.Set(p); err != nil {
			return f, fmt.Errorf("run pattern %q: %w", p, err)
		}
	}
	for _, p := range c.Skip {
		if err := f.Regex.MustNotMatch.Set(p); err != nil {
			return f, fmt.Errorf("skip pattern %q: %w", p, err)
		}
	}
	for _, p := range c.Match {
		if err := f.Globs.Set(p); err != nil {
			return f, fmt.Errorf("match pattern %q: %w", p, err)
		}
	}
	for _, p := range c.Exclude {
		if err := f.SkipGlobs.Set(p); err != nil {
			return f, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
	}
	return f, nil
}
