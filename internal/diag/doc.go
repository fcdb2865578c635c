// Package diag classifies aggregated tag results into findings.
//
// # Purpose
//
//   - Turn every claims.TagResults into a Status bit set (Classify).
//   - Collect one Diagnostic per finding into a Bag, preserving the id
//     insertion order of the results map (Check).
//
// # Scope
//
// Package diag does not perform any formatting or IO. Console and report
// rendering live in internal/report.
//
// # Codes
//
//   - TAG1001 – a proof without a claim (error).
//   - TAG1002 – a claim without a proof (error).
//   - TAG2001 – multiple claims with same id (warning).
//   - TAG2002 – multiple proofs with same id (warning).
//
// Errors make the run fail. Warnings never do, unless CheckOptions asks to
// promote them.
package diag
