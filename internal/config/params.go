package config

import "strings"

// Arity says whether a parameter takes one value or a list.
type Arity uint8

const (
	One Arity = iota
	Many
)

// Kind is the value type of a parameter.
type Kind uint8

const (
	KindString Kind = iota
	KindStrings
	KindInt
	KindBool
)

// Param describes one input parameter. The same table drives defaults,
// config file validation and CLI flag registration.
type Param struct {
	Name        string
	Kind        Kind
	Arity       Arity
	Default     any
	Description string
}

// Flag returns the kebab-case flag name.
func (p Param) Flag() string {
	return FlagName(p.Name)
}

// FlagName turns a parameter name into its flag spelling.
func FlagName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

const (
	ParamConfigPath       = "config_path"
	ParamDirectory        = "directory"
	ParamOutputReport     = "output_report"
	ParamIncludePattern   = "include_pattern"
	ParamExcludePattern   = "exclude_pattern"
	ParamJobs             = "jobs"
	ParamWarningsAsErrors = "warnings_as_errors"
)

// DefaultConfigPath is where the config file is looked up unless overridden.
const DefaultConfigPath = "./.provable_claims"

// Params is the static schema, in help order.
var Params = []Param{
	{
		Name:        ParamConfigPath,
		Kind:        KindString,
		Arity:       One,
		Default:     DefaultConfigPath,
		Description: "config file path",
	},
	{
		Name:        ParamDirectory,
		Kind:        KindString,
		Arity:       One,
		Default:     "./",
		Description: "only files within this directory are searched",
	},
	{
		Name:        ParamOutputReport,
		Kind:        KindString,
		Arity:       One,
		Default:     "",
		Description: "path for the generated output report (.json, .yaml, .toml, .msgpack); empty disables it",
	},
	{
		Name:        ParamIncludePattern,
		Kind:        KindStrings,
		Arity:       Many,
		Default:     []string{"*"},
		Description: "patterns for including files",
	},
	{
		Name:        ParamExcludePattern,
		Kind:        KindStrings,
		Arity:       Many,
		Default:     []string{},
		Description: "patterns for excluding files",
	},
	{
		Name:        ParamJobs,
		Kind:        KindInt,
		Arity:       One,
		Default:     1,
		Description: "files scanned in parallel (0 = number of CPUs)",
	},
	{
		Name:        ParamWarningsAsErrors,
		Kind:        KindBool,
		Arity:       One,
		Default:     false,
		Description: "treat duplicate claims and proofs as errors",
	},
}

// Lookup finds a parameter by name.
func Lookup(name string) (Param, bool) {
	for _, p := range Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
