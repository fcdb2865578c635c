package diag

import (
	"strings"

	"provable/internal/claims"
)

// Status is a bit set of the findings for one tag id.
type Status uint8

const StatusOK Status = 0

const (
	ErrNoClaim Status = 1 << iota
	ErrNoProof
	WarnDupClaim
	WarnDupProof
)

const errMask = ErrNoClaim | ErrNoProof

// Has reports whether all bits of f are set.
func (s Status) Has(f Status) bool {
	return s&f == f && f != 0
}

// IsError reports whether the id is incomplete.
func (s Status) IsError() bool { return s&errMask != 0 }

// IsWarning reports whether the id is ambiguous.
func (s Status) IsWarning() bool { return s&^errMask != 0 }

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	var parts []string
	if s.Has(ErrNoClaim) {
		parts = append(parts, "no-claim")
	}
	if s.Has(ErrNoProof) {
		parts = append(parts, "no-proof")
	}
	if s.Has(WarnDupClaim) {
		parts = append(parts, "dup-claim")
	}
	if s.Has(WarnDupProof) {
		parts = append(parts, "dup-proof")
	}
	return strings.Join(parts, "|")
}

// Classify derives the status of one id. An id has at least one location,
// so at most one of the error bits is set; claims are checked first.
func Classify(r *claims.TagResults) Status {
	var s Status
	switch {
	case len(r.Claims) == 0:
		s |= ErrNoClaim
	case len(r.Proofs) == 0:
		s |= ErrNoProof
	}
	if len(r.Claims) > 1 {
		s |= WarnDupClaim
	}
	if len(r.Proofs) > 1 {
		s |= WarnDupProof
	}
	return s
}

// CheckOptions tunes how findings are reported.
type CheckOptions struct {
	// WarningsAsErrors promotes duplicate findings to errors.
	WarningsAsErrors bool
}

// Check classifies every id in insertion order and collects one diagnostic
// per finding: the error (if any) first, then the warnings.
func Check(results *claims.ResultsMap, opts CheckOptions) *Bag {
	bag := NewBag()
	for id, r := range results.All() {
		st := Classify(r)
		if st == StatusOK {
			continue
		}
		locs := locations(r)
		emit := func(code Code) {
			sev := code.DefaultSeverity()
			if opts.WarningsAsErrors && sev == SevWarning {
				sev = SevError
			}
			bag.Add(New(sev, code, id, locs))
		}
		if st.Has(ErrNoClaim) {
			emit(TagClaimMissing)
		}
		if st.Has(ErrNoProof) {
			emit(TagProofMissing)
		}
		if st.Has(WarnDupClaim) {
			emit(TagDuplicateClaim)
		}
		if st.Has(WarnDupProof) {
			emit(TagDuplicateProof)
		}
	}
	return bag
}

func locations(r *claims.TagResults) []string {
	out := make([]string, 0, len(r.Claims)+len(r.Proofs))
	out = append(out, r.Claims...)
	return append(out, r.Proofs...)
}
