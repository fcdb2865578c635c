package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of the structured report.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatMsgpack:
		return "msgpack"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return "json"
}

// FormatForPath picks the encoding from the file extension; JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return FormatMsgpack
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatJSON
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return doc.EncodeTOML(w)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteFile encodes doc next to path and renames it into place, creating
// parent directories as needed.
func WriteFile(path string, doc *Document) (err error) {
	format := FormatForPath(path)
	if err = doc.Supports(format); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".report-*")
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = f.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err = Encode(f, doc, format); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	// Атомарная замена
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
