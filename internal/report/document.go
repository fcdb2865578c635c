package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"provable/internal/claims"
	"provable/internal/diag"
)

// Ключи сводки; id с таким же именем в документ не попадает.
const (
	KeyNumberTags = "number_tags"
	KeyErrorTags  = "error_tags"
	KeyWarnTags   = "warn_tags"
)

func reservedKey(id string) bool {
	return id == KeyNumberTags || id == KeyErrorTags || id == KeyWarnTags
}

// Entry lists the locations of one tag id.
type Entry struct {
	Claims []string `json:"claims" msgpack:"claims" yaml:"claims" toml:"claims"`
	Proofs []string `json:"proofs" msgpack:"proofs" yaml:"proofs" toml:"proofs"`
}

// Document is the structured report: the summary keys followed by one key
// per tag id, in results insertion order.
type Document struct {
	NumberTags int
	ErrorTags  []string
	WarnTags   []string

	ids     []string
	entries map[string]Entry
	// Skipped holds ids that collide with a summary key.
	Skipped []string
}

// Build assembles the document from the aggregated results and findings.
// error_tags lists ids that fail the run, warn_tags ids with duplicates.
func Build(results *claims.ResultsMap, bag *diag.Bag) *Document {
	doc := &Document{
		NumberTags: results.Len(),
		ErrorTags:  nonNil(bag.TagsWith(diag.SevError)),
		WarnTags:   nonNil(bag.TagsWithCode(diag.TagDuplicateClaim, diag.TagDuplicateProof)),
		entries:    make(map[string]Entry, results.Len()),
	}
	for id, r := range results.All() {
		if reservedKey(id) {
			doc.Skipped = append(doc.Skipped, id)
			continue
		}
		doc.ids = append(doc.ids, id)
		doc.entries[id] = Entry{Claims: nonNil(r.Claims), Proofs: nonNil(r.Proofs)}
	}
	return doc
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// IDs returns the per-id keys in document order.
func (d *Document) IDs() []string {
	return append([]string(nil), d.ids...)
}

// Entry returns the locations stored for id.
func (d *Document) Entry(id string) (Entry, bool) {
	e, ok := d.entries[id]
	return e, ok
}

type summary struct {
	NumberTags int      `toml:"number_tags"`
	ErrorTags  []string `toml:"error_tags"`
	WarnTags   []string `toml:"warn_tags"`
}

// MarshalJSON keeps key order, which a Go map would lose.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(first bool, key string, v any) error {
		if !first {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}
	if err := write(true, KeyNumberTags, d.NumberTags); err != nil {
		return nil, err
	}
	if err := write(false, KeyErrorTags, nonNil(d.ErrorTags)); err != nil {
		return nil, err
	}
	if err := write(false, KeyWarnTags, nonNil(d.WarnTags)); err != nil {
		return nil, err
	}
	for _, id := range d.ids {
		if err := write(false, id, d.entries[id]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var _ msgpack.CustomEncoder = (*Document)(nil)

// EncodeMsgpack writes the document as a single ordered map.
func (d *Document) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(3 + len(d.ids)); err != nil {
		return err
	}
	if err := enc.EncodeString(KeyNumberTags); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(d.NumberTags)); err != nil {
		return err
	}
	if err := enc.EncodeString(KeyErrorTags); err != nil {
		return err
	}
	if err := enc.Encode(nonNil(d.ErrorTags)); err != nil {
		return err
	}
	if err := enc.EncodeString(KeyWarnTags); err != nil {
		return err
	}
	if err := enc.Encode(nonNil(d.WarnTags)); err != nil {
		return err
	}
	for _, id := range d.ids {
		if err := enc.EncodeString(id); err != nil {
			return err
		}
		if err := enc.Encode(d.entries[id]); err != nil {
			return err
		}
	}
	return nil
}

// MarshalYAML returns an ordered mapping node.
func (d *Document) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, v any) error {
		var val yaml.Node
		if err := val.Encode(v); err != nil {
			return err
		}
		k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		root.Content = append(root.Content, k, &val)
		return nil
	}
	if err := add(KeyNumberTags, d.NumberTags); err != nil {
		return nil, err
	}
	if err := add(KeyErrorTags, nonNil(d.ErrorTags)); err != nil {
		return nil, err
	}
	if err := add(KeyWarnTags, nonNil(d.WarnTags)); err != nil {
		return nil, err
	}
	for _, id := range d.ids {
		if err := add(id, d.entries[id]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// ErrEmptyKey: TOML has no representation for the empty tag id.
var ErrEmptyKey = errors.New("empty tag id cannot be written as a TOML key")

// Supports reports whether doc can be encoded in format, so callers can fail
// before anything is written.
func (d *Document) Supports(format Format) error {
	if format != FormatTOML {
		return nil
	}
	if _, ok := d.entries[""]; ok {
		return fmt.Errorf("%w (use a .json, .yaml or .msgpack report)", ErrEmptyKey)
	}
	return nil
}

// EncodeTOML writes the summary keys, then one table per id. Each table is
// encoded separately so the ids keep their order.
func (d *Document) EncodeTOML(w io.Writer) error {
	if err := d.Supports(FormatTOML); err != nil {
		return err
	}
	enc := toml.NewEncoder(w)
	err := enc.Encode(summary{
		NumberTags: d.NumberTags,
		ErrorTags:  nonNil(d.ErrorTags),
		WarnTags:   nonNil(d.WarnTags),
	})
	if err != nil {
		return err
	}
	for _, id := range d.ids {
		if err := enc.Encode(map[string]Entry{id: d.entries[id]}); err != nil {
			return err
		}
	}
	return nil
}
