package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// decodeFile parses a config file into a generic map. The format follows
// the extension: .toml, .yaml/.yml, JSON otherwise.
func decodeFile(path string, data []byte) (map[string]any, error) {
	out := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &out); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected a JSON object, got %T", v)
		}
		out = m
	}
	return out, nil
}

var errType = errors.New("wrong type")

// coerce converts a decoded or flag value to the parameter's Go type:
// string, []string, int or bool.
func coerce(p Param, v any) (any, error) {
	switch p.Kind {
	case KindString:
		switch s := v.(type) {
		case nil:
			return "", nil
		case string:
			return s, nil
		}
	case KindStrings:
		switch xs := v.(type) {
		case nil:
			return []string{}, nil
		case string:
			return []string{xs}, nil
		case []string:
			return append([]string{}, xs...), nil
		case []any:
			out := make([]string, 0, len(xs))
			for i, x := range xs {
				s, ok := x.(string)
				if !ok {
					return nil, fmt.Errorf("%w: element %d is %T, want string", errType, i, x)
				}
				out = append(out, s)
			}
			return out, nil
		}
	case KindInt:
		n, ok := toInt(v)
		if !ok {
			break
		}
		if n < 0 {
			return nil, fmt.Errorf("must not be negative, got %d", n)
		}
		return n, nil
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: got %T", errType, v)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		i, err := safecast.Conv[int](n)
		return i, err == nil
	case uint64:
		i, err := safecast.Conv[int](n)
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return toInt(i)
	}
	return 0, false
}
