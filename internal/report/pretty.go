package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"provable/internal/claims"
	"provable/internal/diag"
)

type palette struct {
	err  *color.Color
	warn *color.Color
	ok   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed),
		warn: color.New(color.FgYellow),
		ok:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	if s == diag.SevError {
		return p.err
	}
	return p.warn
}

// Pretty печатает блок для каждого id с ошибками или предупреждениями,
// в порядке вставки results:
//
//	ERROR: a claim without a proof;
//	 WARN: multiple claims with same id;
//	\tTag id: <id>
//	\tClaim @ file:line:col
//	\tProof @ file:line:col
//	<пустая строка>
//
// Ids без находок не печатаются.
func Pretty(w io.Writer, results *claims.ResultsMap, bag *diag.Bag, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for id, r := range results.All() {
		items := bag.ForTag(id)
		if len(items) == 0 {
			continue
		}
		// errors go first, then warnings, whatever the promotion did
		for _, pass := range []bool{true, false} {
			for _, d := range items {
				if isErrorCode(d.Code) != pass {
					continue
				}
				if _, err := fmt.Fprintf(w, "%s: %s;\n", pal.severity(d.Severity).Sprint(d.Severity.Label()), d.Message); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintf(w, "\tTag id: %s\n", id); err != nil {
			return err
		}
		for _, loc := range r.Claims {
			if _, err := fmt.Fprintf(w, "\tClaim @ %s\n", loc); err != nil {
				return err
			}
		}
		for _, loc := range r.Proofs {
			if _, err := fmt.Fprintf(w, "\tProof @ %s\n", loc); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func isErrorCode(c diag.Code) bool {
	return c == diag.TagClaimMissing || c == diag.TagProofMissing
}

// Summary prints the closing lines of a run.
func Summary(w io.Writer, files, ids int, ok bool, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	if _, err := fmt.Fprintf(w, "== %d files scanned, %d tag ids found.\n", files, ids); err != nil {
		return err
	}
	var err error
	if ok {
		_, err = fmt.Fprintf(w, "== %s\n", pal.ok.Sprint("Looks Good To Me :)"))
	} else {
		_, err = fmt.Fprintf(w, "== %s\n", pal.err.Sprint("Incomplete claims found :("))
	}
	return err
}

// Writing announces the structured report destination.
func Writing(w io.Writer, path string) error {
	_, err := fmt.Fprintf(w, "== Writing output report @ %s\n", path)
	return err
}
