package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Незавершённые пары
	TagClaimMissing Code = 1001
	TagProofMissing Code = 1002

	// Неоднозначные пары
	TagDuplicateClaim Code = 2001
	TagDuplicateProof Code = 2002
)

var codeDescription = map[Code]string{
	UnknownCode:       "unknown finding",
	TagClaimMissing:   "a proof without a claim",
	TagProofMissing:   "a claim without a proof",
	TagDuplicateClaim: "multiple claims with same id",
	TagDuplicateProof: "multiple proofs with same id",
}

// ID returns the stable short form, e.g. "TAG1001".
func (c Code) ID() string {
	if c == UnknownCode {
		return "TAG0000"
	}
	return fmt.Sprintf("TAG%04d", int(c))
}

// Title is the human description used as the default message.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// DefaultSeverity is the severity a code carries unless promoted.
func (c Code) DefaultSeverity() Severity {
	switch c {
	case TagClaimMissing, TagProofMissing:
		return SevError
	case TagDuplicateClaim, TagDuplicateProof:
		return SevWarning
	}
	return SevInfo
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
