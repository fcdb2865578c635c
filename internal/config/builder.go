package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
)

// Builder applies the three configuration stages in order:
// defaults, then the config file, then CLI overrides. The first error
// stops further stages; Build reports it.
type Builder struct {
	values   map[string]any
	warnings []Warning
	err      error
}

func NewBuilder() *Builder {
	return &Builder{values: make(map[string]any, len(Params))}
}

// Defaults sets every parameter to its schema default.
func (b *Builder) Defaults() *Builder {
	if b.err != nil {
		return b
	}
	for _, p := range Params {
		v, err := coerce(p, p.Default)
		if err != nil {
			b.err = fmt.Errorf("failed to apply default for %s: %w", p.Name, err)
			return b
		}
		b.values[p.Name] = v
	}
	return b
}

// File overlays the values of the config file at path. A missing or
// unreadable file only produces a warning; a file that does not parse is
// fatal. Unknown keys are warned about and ignored.
func (b *Builder) File(path string) *Builder {
	if b.err != nil {
		return b
	}
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "does not exist, using default config + CLI args"
		if !errors.Is(err, fs.ErrNotExist) {
			msg = fmt.Sprintf("could not be read (%v), using default config + CLI args", err)
		}
		b.warnings = append(b.warnings, Warning{Path: path, Message: msg})
		return b
	}

	raw, err := decodeFile(path, data)
	if err != nil {
		b.err = &Error{Code: ErrCodeInvalid, Path: path, Err: err}
		return b
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		p, ok := Lookup(k)
		if !ok {
			b.warnings = append(b.warnings, Warning{Path: path, Key: k, Message: "is not an input parameter, ignoring it"})
			continue
		}
		v, err := coerce(p, raw[k])
		if err != nil {
			b.err = &Error{Code: ErrCodeValue, Path: path, Key: k, Err: err}
			return b
		}
		b.values[k] = v
	}
	return b
}

// CLI overlays explicitly set command-line values, keyed by parameter name.
func (b *Builder) CLI(overrides map[string]any) *Builder {
	if b.err != nil {
		return b
	}
	for _, p := range Params {
		raw, ok := overrides[p.Name]
		if !ok {
			continue
		}
		v, err := coerce(p, raw)
		if err != nil {
			b.err = &Error{Code: ErrCodeValue, Key: p.Name, Err: err}
			return b
		}
		b.values[p.Name] = v
	}
	for k := range overrides {
		if _, ok := Lookup(k); !ok {
			b.err = &Error{Code: ErrCodeValue, Key: k, Err: errors.New("unknown parameter")}
			return b
		}
	}
	return b
}

// Build returns the merged configuration and the warnings collected so far.
func (b *Builder) Build() (Config, []Warning, error) {
	if b.err != nil {
		return Config{}, b.warnings, b.err
	}
	for _, p := range Params {
		if _, ok := b.values[p.Name]; !ok {
			return Config{}, b.warnings, fmt.Errorf("parameter %s has no value (Defaults not applied?)", p.Name)
		}
	}
	return fromValues(b.values), b.warnings, nil
}

// PathFrom returns the config file to read: the CLI override if present,
// the default otherwise.
func PathFrom(overrides map[string]any) string {
	if v, ok := overrides[ParamConfigPath].(string); ok && v != "" {
		return v
	}
	return DefaultConfigPath
}

// Load runs all three stages.
func Load(overrides map[string]any) (Config, []Warning, error) {
	return NewBuilder().Defaults().File(PathFrom(overrides)).CLI(overrides).Build()
}
