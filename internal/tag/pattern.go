package tag

import (
	"fmt"
	"regexp"
)

// Kind distinguishes the two halves of a tag pair.
type Kind uint8

const (
	// KindClaim marks an @claim{...} occurrence.
	KindClaim Kind = iota
	// KindProof marks an @proof{...} occurrence.
	KindProof
)

func (k Kind) String() string {
	switch k {
	case KindClaim:
		return "claim"
	case KindProof:
		return "proof"
	}
	return "unknown"
}

// Pattern is a compiled tag matcher with exactly one capture group: the id.
type Pattern struct {
	Kind Kind
	re   *regexp.Regexp
}

var (
	// ClaimPattern matches @claim{<id>} where <id> is any run of bytes without '}'.
	ClaimPattern = MustPattern(KindClaim, `@claim\{([^}]*)\}`)
	// ProofPattern matches @proof{<id>} where <id> is any run of bytes without '}'.
	ProofPattern = MustPattern(KindProof, `@proof\{([^}]*)\}`)
)

// NewPattern compiles expr for kind. The expression must have one capture group.
func NewPattern(kind Kind, expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s pattern: %w", kind, err)
	}
	if n := re.NumSubexp(); n != 1 {
		return nil, fmt.Errorf("%s pattern %q must have exactly one capture group, has %d", kind, expr, n)
	}
	return &Pattern{Kind: kind, re: re}, nil
}

// MustPattern is like NewPattern but panics on error.
func MustPattern(kind Kind, expr string) *Pattern {
	p, err := NewPattern(kind, expr)
	if err != nil {
		panic(err)
	}
	return p
}

// PatternFor returns the built-in pattern for kind.
func PatternFor(kind Kind) *Pattern {
	if kind == KindProof {
		return ProofPattern
	}
	return ClaimPattern
}

func (p *Pattern) String() string {
	return p.re.String()
}

// matches returns submatch index pairs in ascending, non-overlapping order.
func (p *Pattern) matches(content []byte) [][]int {
	return p.re.FindAllSubmatchIndex(content, -1)
}
