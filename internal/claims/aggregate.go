package claims

import (
	"iter"
	"slices"

	"provable/internal/tag"
)

// Aggregate builds the results map from all claim occurrences followed by all
// proof occurrences. Nothing is deduplicated: every sighting is appended.
//
// Occurrence kinds are taken from the pass, not from the occurrence, so a
// claim sequence always fills Claims.
func Aggregate(claimOcc, proofOcc iter.Seq[tag.Occurrence]) *ResultsMap {
	m := NewResultsMap()
	for o := range claimOcc {
		o.Kind = tag.KindClaim
		m.Add(o)
	}
	for o := range proofOcc {
		o.Kind = tag.KindProof
		m.Add(o)
	}
	return m
}

// Batch holds the occurrences found in one file.
type Batch struct {
	File   string
	Claims []tag.Occurrence
	Proofs []tag.Occurrence
}

// Collect aggregates per-file batches in slice order: claims of every file
// first, then proofs of every file. Batches must be ordered by file-list
// position for the result to match a sequential scan.
func Collect(batches []Batch) *ResultsMap {
	claimsSeq := func(yield func(tag.Occurrence) bool) {
		for _, b := range batches {
			for _, o := range b.Claims {
				if !yield(o) {
					return
				}
			}
		}
	}
	proofsSeq := func(yield func(tag.Occurrence) bool) {
		for _, b := range batches {
			for _, o := range b.Proofs {
				if !yield(o) {
					return
				}
			}
		}
	}
	return Aggregate(claimsSeq, proofsSeq)
}

// FromSlices is a convenience wrapper over Aggregate.
func FromSlices(claimOcc, proofOcc []tag.Occurrence) *ResultsMap {
	return Aggregate(slices.Values(claimOcc), slices.Values(proofOcc))
}
