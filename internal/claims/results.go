package claims

import (
	"iter"
	"slices"

	"provable/internal/tag"
)

// TagResults collects every location where one tag id was claimed or proven.
// Locations are stored in display form ("file:line:column").
type TagResults struct {
	ID     string
	Claims []string
	Proofs []string
}

// Complete reports whether the id has at least one claim and one proof.
func (r *TagResults) Complete() bool {
	return len(r.Claims) > 0 && len(r.Proofs) > 0
}

// Ambiguous reports whether the id was claimed or proven more than once.
func (r *TagResults) Ambiguous() bool {
	return len(r.Claims) > 1 || len(r.Proofs) > 1
}

// ResultsMap maps tag ids to their results, remembering first-seen order.
type ResultsMap struct {
	order []string
	byID  map[string]*TagResults
}

// NewResultsMap creates an empty map.
func NewResultsMap() *ResultsMap {
	return &ResultsMap{byID: make(map[string]*TagResults)}
}

// Add appends the occurrence's location to the claims or proofs of its id,
// creating the entry on first sighting.
func (m *ResultsMap) Add(o tag.Occurrence) {
	r, ok := m.byID[o.ID]
	if !ok {
		r = &TagResults{ID: o.ID}
		m.byID[o.ID] = r
		m.order = append(m.order, o.ID)
	}
	switch o.Kind {
	case tag.KindClaim:
		r.Claims = append(r.Claims, o.Location())
	case tag.KindProof:
		r.Proofs = append(r.Proofs, o.Location())
	}
}

// Get returns the results for id.
func (m *ResultsMap) Get(id string) (*TagResults, bool) {
	r, ok := m.byID[id]
	return r, ok
}

// Len returns the number of distinct ids.
func (m *ResultsMap) Len() int {
	return len(m.order)
}

// IDs returns the ids in first-seen order. The slice is a copy.
func (m *ResultsMap) IDs() []string {
	return slices.Clone(m.order)
}

// All iterates ids and results in first-seen order.
func (m *ResultsMap) All() iter.Seq2[string, *TagResults] {
	return func(yield func(string, *TagResults) bool) {
		for _, id := range m.order {
			if !yield(id, m.byID[id]) {
				return
			}
		}
	}
}

// Complete reports whether every id is complete.
func (m *ResultsMap) Complete() bool {
	for _, r := range m.All() {
		if !r.Complete() {
			return false
		}
	}
	return true
}
