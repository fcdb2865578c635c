package tag

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"provable/internal/source"
)

// Occurrence is one sighting of a claim or proof in a file.
type Occurrence struct {
	ID     string
	Kind   Kind
	File   string
	Line   uint32 // 1-based
	Column uint32 // 0-based, bytes
	Offset int
}

// Location renders the occurrence as "file:line:column".
func (o Occurrence) Location() string {
	return fmt.Sprintf("%s:%d:%d", o.File, o.Line, o.Column)
}

// DecodeError reports a tag id that is not valid UTF-8.
type DecodeError struct {
	Path   string
	Line   uint32
	Column uint32
	Raw    []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s:%d:%d: tag id is not valid UTF-8: %q", e.Path, e.Line, e.Column, e.Raw)
}

// ScanFile yields every match of p in f, in byte-offset order.
//
// The newline index is built once per call and only up to the last match.
// Iteration stops after the first error.
func ScanFile(f *source.File, p *Pattern) iter.Seq2[Occurrence, error] {
	return func(yield func(Occurrence, error) bool) {
		if f.Empty() {
			return
		}
		found := p.matches(f.Content)
		if len(found) == 0 {
			return
		}

		lines := source.NewLineMap(f.Content, found[len(found)-1][0])
		for _, m := range found {
			line, col := lines.Position(m[0])
			raw := f.Content[m[2]:m[3]]
			if !utf8.Valid(raw) {
				yield(Occurrence{}, &DecodeError{
					Path:   f.Path,
					Line:   line,
					Column: col,
					Raw:    append([]byte(nil), raw...),
				})
				return
			}
			occ := Occurrence{
				ID:     string(raw),
				Kind:   p.Kind,
				File:   f.Path,
				Line:   line,
				Column: col,
				Offset: m[0],
			}
			if !yield(occ, nil) {
				return
			}
		}
	}
}

// Scan loads each path in order and yields its occurrences of p.
//
// Every range over the returned sequence re-reads the files; nothing is cached.
// The first unreadable file ends the sequence with a *source.ReadError.
func Scan(paths []string, p *Pattern) iter.Seq2[Occurrence, error] {
	return func(yield func(Occurrence, error) bool) {
		for _, path := range paths {
			f, err := source.Load(path)
			if err != nil {
				yield(Occurrence{}, err)
				return
			}
			ok := true
			for occ, scanErr := range ScanFile(f, p) {
				if !yield(occ, scanErr) || scanErr != nil {
					ok = false
					break
				}
			}
			closeErr := f.Close()
			if !ok {
				return
			}
			if closeErr != nil {
				yield(Occurrence{}, &source.ReadError{Path: path, Err: closeErr})
				return
			}
		}
	}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Occurrence, error]) ([]Occurrence, error) {
	var out []Occurrence
	for occ, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, occ)
	}
	return out, nil
}
