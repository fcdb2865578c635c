package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"provable/internal/config"
)

// registerConfigFlags adds one flag per configuration parameter. List
// parameters accept repetition and comma separation.
func registerConfigFlags(fs *pflag.FlagSet) {
	for _, p := range config.Params {
		switch p.Kind {
		case config.KindStrings:
			fs.StringSlice(p.Flag(), p.Default.([]string), p.Description)
		case config.KindInt:
			fs.Int(p.Flag(), p.Default.(int), p.Description)
		case config.KindBool:
			fs.Bool(p.Flag(), p.Default.(bool), p.Description)
		default:
			fs.String(p.Flag(), p.Default.(string), p.Description)
		}
	}
}

// configOverrides returns the explicitly set configuration flags keyed by
// parameter name.
func configOverrides(fs *pflag.FlagSet) (map[string]any, error) {
	out := make(map[string]any)
	for _, p := range config.Params {
		name := p.Flag()
		if !fs.Changed(name) {
			continue
		}
		var (
			v   any
			err error
		)
		switch p.Kind {
		case config.KindStrings:
			v, err = fs.GetStringSlice(name)
		case config.KindInt:
			v, err = fs.GetInt(name)
		case config.KindBool:
			v, err = fs.GetBool(name)
		default:
			v, err = fs.GetString(name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		out[p.Name] = v
	}
	return out, nil
}
