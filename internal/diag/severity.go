package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for findings that do not fail the run.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the fixed-width console prefix ("ERROR", " WARN", " INFO").
func (s Severity) Label() string {
	switch s {
	case SevWarning:
		return " WARN"
	case SevError:
		return "ERROR"
	}
	return " INFO"
}
