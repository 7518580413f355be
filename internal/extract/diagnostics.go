package extract

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/pux2html/internal/common"
	"github.com/dmitrijs2005/pux2html/internal/models"
)

// Diagnostic is a non-fatal problem met while extracting. The item or field
// it names is absent from the report.
type Diagnostic struct {
	Err     error
	Account string
	Folder  string
	Item    string
	Field   string
}

func (d Diagnostic) Error() string {
	var parts []string
	for _, p := range []string{d.Folder, d.Item, d.Field} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return d.Err.Error()
	}
	return strings.Join(parts, " / ") + ": " + d.Err.Error()
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Summary counts what an extraction kept and what it skipped.
type Summary struct {
	Accounts      int
	Folders       int
	Items         int
	Records       int
	SkippedItems  int
	Fields        int
	SkippedFields int
	Attachments   int
	ConvertedPDFs int
}

// Result is the outcome of Extract.
type Result struct {
	Report      *models.Report
	Diagnostics []Diagnostic
	Summary     Summary
}

// Count returns how many diagnostics match target (see errors.Is).
func (r *Result) Count(target error) int {
	n := 0
	for _, d := range r.Diagnostics {
		if errors.Is(d, target) {
			n++
		}
	}
	return n
}

// itemSkipped reports whether a diagnostic removed a whole item.
func itemSkipped(err error) bool {
	return errors.Is(err, common.ErrEmptyOverview) || errors.Is(err, common.ErrMalformedItem)
}
