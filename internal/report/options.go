package report

import (
	"fmt"
	"strings"
)

// ColorMode is the auto|on|off switch behind the --color and --ui flags.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

// ParseColorMode accepts auto|on|off (case-insensitive).
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "on":
		return ColorOn, nil
	case "off":
		return ColorOff, nil
	}
	return ColorAuto, fmt.Errorf("unsupported mode %q (must be auto, on or off)", s)
}

// Enabled resolves the mode against whether the output is a terminal.
func (m ColorMode) Enabled(isTTY bool) bool {
	switch m {
	case ColorOn:
		return true
	case ColorOff:
		return false
	}
	return isTTY
}

// PrettyOpts configures console rendering of findings and the summary.
type PrettyOpts struct {
	Color bool
}
