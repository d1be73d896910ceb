package audit

import (
	"strings"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"golang.org/x/text/cases"
)

// Criteria selects which derived lines appear in the view. Empty fields match
// everything.
type Criteria struct {
	FreeText          string `json:"freeText"`
	ActionCode        string `json:"actionCode"`
	ActiveSourceLabel string `json:"activeSourceLabel"`
}

// IsZero reports whether the criteria match every line.
func (c Criteria) IsZero() bool {
	return c.FreeText == "" && c.ActionCode == "" && c.ActiveSourceLabel == ""
}

// Filter keeps the lines that satisfy every criterion. Matching is by substring:
// the id is compared case-insensitively, the expense element and action code
// case-sensitively. The source label must match exactly.
func Filter(lines []entity.DerivedLedgerLine, c Criteria) []entity.DerivedLedgerLine {
	fold := cases.Fold()
	query := fold.String(c.FreeText)

	out := make([]entity.DerivedLedgerLine, 0, len(lines))
	for _, l := range lines {
		if c.ActiveSourceLabel != "" && ResolveSource(l.SourceCode) != c.ActiveSourceLabel {
			continue
		}
		if c.FreeText != "" &&
			!strings.Contains(fold.String(l.ID), query) &&
			!strings.Contains(l.ExpenseElement, c.FreeText) &&
			!strings.Contains(l.ActionCode, c.FreeText) {
			continue
		}
		if c.ActionCode != "" && !strings.Contains(l.ActionCode, c.ActionCode) {
			continue
		}
		out = append(out, l)
	}
	return out
}
