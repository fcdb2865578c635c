package diag

import (
	"slices"
	"testing"

	"provable/internal/claims"
	"provable/internal/tag"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		r    claims.TagResults
		want Status
	}{
		{"complete", claims.TagResults{Claims: []string{"a:1:0"}, Proofs: []string{"b:1:0"}}, StatusOK},
		{"no proof", claims.TagResults{Claims: []string{"a:1:0"}}, ErrNoProof},
		{"no claim", claims.TagResults{Proofs: []string{"b:1:0"}}, ErrNoClaim},
		{"dup claim", claims.TagResults{Claims: []string{"a:1:0", "a:2:0"}, Proofs: []string{"b:1:0"}}, WarnDupClaim},
		{"dup proof", claims.TagResults{Claims: []string{"a:1:0"}, Proofs: []string{"b:1:0", "c:1:0"}}, WarnDupProof},
		{"dup claim without proof", claims.TagResults{Claims: []string{"a:1:0", "a:2:0"}}, ErrNoProof | WarnDupClaim},
		{"dup proof without claim", claims.TagResults{Proofs: []string{"b:1:0", "c:1:0"}}, ErrNoClaim | WarnDupProof},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(&tt.r)
			if got != tt.want {
				t.Fatalf("Classify = %s, want %s", got, tt.want)
			}
			if got.IsError() == tt.r.Complete() {
				t.Errorf("IsError() = %v disagrees with Complete() = %v", got.IsError(), tt.r.Complete())
			}
			if got.IsWarning() != tt.r.Ambiguous() {
				t.Errorf("IsWarning() = %v disagrees with Ambiguous() = %v", got.IsWarning(), tt.r.Ambiguous())
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	if got := StatusOK.String(); got != "ok" {
		t.Errorf("StatusOK = %q", got)
	}
	if got := (ErrNoProof | WarnDupClaim).String(); got != "no-proof|dup-claim" {
		t.Errorf("combined = %q", got)
	}
}

func addLoc(m *claims.ResultsMap, id, file string, line uint32, claim bool) {
	kind := tag.KindProof
	if claim {
		kind = tag.KindClaim
	}
	m.Add(tag.Occurrence{ID: id, Kind: kind, File: file, Line: line})
}

func sample() *claims.ResultsMap {
	m := claims.NewResultsMap()
	addLoc(m, "ok", "a", 1, true)
	addLoc(m, "lonely", "a", 2, true)
	addLoc(m, "twice", "a", 3, true)
	addLoc(m, "twice", "c", 1, true)
	addLoc(m, "ok", "b", 1, false)
	addLoc(m, "orphan", "b", 2, false)
	addLoc(m, "twice", "b", 3, false)
	return m
}

func TestCheckOrderAndSeverity(t *testing.T) {
	bag := Check(sample(), CheckOptions{})

	type row struct {
		id   string
		code Code
		sev  Severity
	}
	var got []row
	for _, d := range bag.Items() {
		got = append(got, row{d.TagID, d.Code, d.Severity})
	}
	want := []row{
		{"lonely", TagProofMissing, SevError},
		{"twice", TagDuplicateClaim, SevWarning},
		{"orphan", TagClaimMissing, SevError},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("diagnostics = %+v, want %+v", got, want)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Errorf("expected both errors and warnings")
	}
	if ids := bag.TagsWith(SevError); !slices.Equal(ids, []string{"lonely", "orphan"}) {
		t.Errorf("error ids = %v", ids)
	}
	if ids := bag.TagsWithCode(TagDuplicateClaim, TagDuplicateProof); !slices.Equal(ids, []string{"twice"}) {
		t.Errorf("warn ids = %v", ids)
	}
	twice := bag.ForTag("twice")
	if len(twice) != 1 || !slices.Equal(twice[0].Locations, []string{"a:3:0", "c:1:0", "b:3:0"}) {
		t.Errorf("twice diagnostics = %+v", twice)
	}
}

func TestCheckWarningsOnlyDoNotFail(t *testing.T) {
	m := claims.NewResultsMap()
	addLoc(m, "dup", "a", 1, true)
	addLoc(m, "dup", "a", 2, false)
	addLoc(m, "dup", "a", 3, false)

	bag := Check(m, CheckOptions{})
	if bag.HasErrors() {
		t.Fatal("duplicates must not be errors by default")
	}
	if !bag.HasWarnings() {
		t.Fatal("expected a warning")
	}

	strict := Check(m, CheckOptions{WarningsAsErrors: true})
	if !strict.HasErrors() {
		t.Fatal("expected promoted warning to be an error")
	}
	if got := strict.Items()[0].Code; got != TagDuplicateProof {
		t.Errorf("code = %s, want %s", got.ID(), TagDuplicateProof.ID())
	}
}

func TestCodeFormatting(t *testing.T) {
	if got := TagClaimMissing.ID(); got != "TAG1001" {
		t.Errorf("ID = %q", got)
	}
	if got := TagProofMissing.Title(); got != "a claim without a proof" {
		t.Errorf("Title = %q", got)
	}
	if got := SevWarning.Label(); got != " WARN" {
		t.Errorf("Label = %q", got)
	}
}
