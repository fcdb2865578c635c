// Package config merges built-in defaults, an optional config file and CLI
// overrides into one immutable Config.
package config

import (
	"encoding/json"
	"io"
	"slices"
)

// Config is the effective configuration of a run. It is a value; getters
// return copies of list fields.
type Config struct {
	configPath       string
	directory        string
	outputReport     string
	include          []string
	exclude          []string
	jobs             int
	warningsAsErrors bool
}

func (c Config) ConfigPath() string { return c.configPath }
func (c Config) Directory() string { return c.directory }
func (c Config) OutputReport() string { return c.outputReport }
func (c Config) IncludePatterns() []string { return slices.Clone(c.include) }
func (c Config) ExcludePatterns() []string { return slices.Clone(c.exclude) }
func (c Config) Jobs() int { return c.jobs }
func (c Config) WarningsAsErrors() bool { return c.warningsAsErrors }

// Map returns the configuration keyed by parameter name. An empty
// output_report is rendered as nil.
func (c Config) Map() map[string]any {
	var report any
	if c.outputReport != "" {
		report = c.outputReport
	}
	return map[string]any{
		ParamConfigPath:       c.configPath,
		ParamDirectory:        c.directory,
		ParamOutputReport:     report,
		ParamIncludePattern:   c.IncludePatterns(),
		ParamExcludePattern:   c.ExcludePatterns(),
		ParamJobs:             c.jobs,
		ParamWarningsAsErrors: c.warningsAsErrors,
	}
}

// MarshalJSON renders Map with sorted keys.
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

// Dump writes the configuration as indented JSON.
func (c Config) Dump(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

func fromValues(v map[string]any) Config {
	return Config{
		configPath:       v[ParamConfigPath].(string),
		directory:        v[ParamDirectory].(string),
		outputReport:     v[ParamOutputReport].(string),
		include:          slices.Clone(v[ParamIncludePattern].([]string)),
		exclude:          slices.Clone(v[ParamExcludePattern].([]string)),
		jobs:             v[ParamJobs].(int),
		warningsAsErrors: v[ParamWarningsAsErrors].(bool),
	}
}
