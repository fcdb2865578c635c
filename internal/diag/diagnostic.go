package diag

// Diagnostic is one finding about one tag id.
type Diagnostic struct {
	Severity Severity
	Code     Code
	TagID    string
	Message  string
	// Locations lists the claims and proofs that support the finding.
	Locations []string
}

func New(sev Severity, code Code, tagID string, locations []string) Diagnostic {
	return Diagnostic{
		Severity:  sev,
		Code:      code,
		TagID:     tagID,
		Message:   code.Title(),
		Locations: locations,
	}
}
