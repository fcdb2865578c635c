package tag

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"provable/internal/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestScanFilePositions(t *testing.T) {
	f := source.AddVirtual("mem.hpp", []byte("ab\n@claim{X}\n  // @claim{Y} and @claim{Z}\n"))

	got, err := Collect(ScanFile(f, ClaimPattern))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		id   string
		line uint32
		col  uint32
	}{
		{"X", 2, 0},
		{"Y", 3, 5},
		{"Z", 3, 19},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		o := got[i]
		if o.ID != w.id || o.Line != w.line || o.Column != w.col {
			t.Errorf("occurrence %d = {%s %d:%d}, want {%s %d:%d}", i, o.ID, o.Line, o.Column, w.id, w.line, w.col)
		}
		if o.Kind != KindClaim {
			t.Errorf("occurrence %d: expected claim kind, got %s", i, o.Kind)
		}
	}
	if loc := got[0].Location(); loc != "mem.hpp:2:0" {
		t.Errorf("unexpected location %q", loc)
	}
}

func TestScanFileIDSyntax(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty id", content: "@claim{}", want: []string{""}},
		{name: "slashes and spaces", content: "@claim{MyClass/initialize docs}", want: []string{"MyClass/initialize docs"}},
		{name: "no closing brace", content: "@claim{open", want: nil},
		{name: "stops at first brace", content: "@claim{a}b}", want: []string{"a"}},
		{name: "spans newline", content: "@claim{a\nb}", want: []string{"a\nb"}},
		{name: "proof is ignored", content: "@proof{p} @claim{c}", want: []string{"c"}},
		{name: "case sensitive", content: "@Claim{no}", want: nil},
		{name: "adjacent", content: "@claim{a}@claim{b}", want: []string{"a", "b"}},
		{name: "unicode id", content: "@claim{данные/проверка}", want: []string{"данные/проверка"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collect(ScanFile(source.AddVirtual("x", []byte(tt.content)), ClaimPattern))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d ids, got %d (%+v)", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("id %d = %q, want %q", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestScanFileInvalidUTF8(t *testing.T) {
	f := source.AddVirtual("bad.bin", []byte("x\n@proof{\xff\xfe}"))

	_, err := Collect(ScanFile(f, ProofPattern))
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if decErr.Path != "bad.bin" || decErr.Line != 2 || decErr.Column != 0 {
		t.Errorf("unexpected error position: %+v", decErr)
	}
}

func TestScanFileEmpty(t *testing.T) {
	got, err := Collect(ScanFile(source.AddVirtual("empty", nil), ClaimPattern))
	if err != nil || len(got) != 0 {
		t.Fatalf("expected nothing from empty file, got %v, %v", got, err)
	}
}

func TestScanAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "@proof{one}\n@proof{two}")
	empty := writeFile(t, dir, "empty.txt", "")
	b := writeFile(t, dir, "b.txt", "\n\n@proof{one}")

	got, err := Collect(Scan([]string{a, empty, b}, ProofPattern))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	locs := make([]string, len(got))
	for i, o := range got {
		locs[i] = o.ID + "@" + o.Location()
	}
	want := []string{
		"one@" + a + ":1:0",
		"two@" + a + ":2:0",
		"one@" + b + ":3:0",
	}
	if len(locs) != len(want) {
		t.Fatalf("got %v, want %v", locs, want)
	}
	for i := range want {
		if locs[i] != want[i] {
			t.Errorf("occurrence %d = %s, want %s", i, locs[i], want[i])
		}
	}
}

func TestScanIsRestartable(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "@claim{x} @claim{y}")
	seq := Scan([]string{a}, ClaimPattern)

	first, err := Collect(seq)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := Collect(seq)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 occurrences on each pass, got %d and %d", len(first), len(second))
	}
}

func TestScanFailsFast(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "@claim{x}")
	missing := filepath.Join(dir, "missing.txt")
	c := writeFile(t, dir, "c.txt", "@claim{never}")

	got, err := Collect(Scan([]string{a, missing, c}, ClaimPattern))
	var readErr *source.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *source.ReadError, got %v", err)
	}
	if readErr.Path != missing {
		t.Errorf("expected error for %s, got %s", missing, readErr.Path)
	}
	if len(got) != 1 || got[0].ID != "x" {
		t.Errorf("expected only the occurrence before the failure, got %+v", got)
	}
}

func TestScanEarlyBreak(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "@claim{1} @claim{2} @claim{3}")

	n := 0
	for _, err := range Scan([]string{a}, ClaimPattern) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("expected to stop after 2, got %d", n)
	}
}

func TestNewPatternRequiresOneGroup(t *testing.T) {
	if _, err := NewPattern(KindClaim, `@claim\{[^}]*\}`); err == nil {
		t.Error("expected error for pattern without capture group")
	}
	if _, err := NewPattern(KindClaim, `@claim\{(([^}]*))\}`); err == nil {
		t.Error("expected error for pattern with two capture groups")
	}
	if _, err := NewPattern(KindClaim, `@claim\{(`); err == nil {
		t.Error("expected error for invalid expression")
	}
	if PatternFor(KindProof) != ProofPattern || PatternFor(KindClaim) != ClaimPattern {
		t.Error("PatternFor returned the wrong built-in pattern")
	}
}
