package diag

type Bag struct {
	items []Diagnostic
	byTag map[string][]int
}

func NewBag() *Bag {
	return &Bag{byTag: make(map[string][]int)}
}

// Add appends d; diagnostics keep insertion order.
func (b *Bag) Add(d Diagnostic) {
	b.byTag[d.TagID] = append(b.byTag[d.TagID], len(b.items))
	b.items = append(b.items, d)
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity == Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity == SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// ForTag returns the diagnostics of one tag id, in insertion order.
func (b *Bag) ForTag(id string) []Diagnostic {
	idx := b.byTag[id]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(idx))
	for i, j := range idx {
		out[i] = b.items[j]
	}
	return out
}

// TagsWithCode returns the distinct tag ids that carry any of codes, in
// first-seen order.
func (b *Bag) TagsWithCode(codes ...Code) []string {
	return b.tagsWhere(func(d *Diagnostic) bool {
		for _, c := range codes {
			if d.Code == c {
				return true
			}
		}
		return false
	})
}

// TagsWith returns the distinct tag ids that carry a diagnostic of severity
// sev, in the order their first such diagnostic was added.
func (b *Bag) TagsWith(sev Severity) []string {
	return b.tagsWhere(func(d *Diagnostic) bool { return d.Severity == sev })
}

func (b *Bag) tagsWhere(keep func(*Diagnostic) bool) []string {
	seen := make(map[string]struct{})
	var ids []string
	for i := range b.items {
		d := &b.items[i]
		if !keep(d) {
			continue
		}
		if _, ok := seen[d.TagID]; ok {
			continue
		}
		seen[d.TagID] = struct{}{}
		ids = append(ids, d.TagID)
	}
	return ids
}
