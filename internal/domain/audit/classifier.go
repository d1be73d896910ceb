// Package audit holds the derived-metrics engine of the dashboard: the 13th-month
// classifier, the per-line metrics calculator, the funding-source resolver and
// the filter/group/sum pipeline. Every function here is pure and total.
package audit

import "strings"

// CategoryRules decides which expense elements carry an extra (13th) disbursement
// cycle. An element matches when it starts with any prefix or contains any
// sub-element code.
type CategoryRules struct {
	Prefixes []string
	Contains []string
}

// ThirteenthMonthRules covers personnel expenses (3.1 family) and substitute or
// temporary personnel (3.3.90.08), in dotted and undotted code formats.
var ThirteenthMonthRules = CategoryRules{
	Prefixes: []string{"3.1", "31"},
	Contains: []string{"3.3.90.08", "339008"},
}

// Match reports whether expenseElement belongs to the rule's category.
func (r CategoryRules) Match(expenseElement string) bool {
	code := strings.TrimSpace(expenseElement)
	if code == "" {
		return false
	}
	for _, p := range r.Prefixes {
		if p != "" && strings.HasPrefix(code, p) {
			return true
		}
	}
	for _, c := range r.Contains {
		if c != "" && strings.Contains(code, c) {
			return true
		}
	}
	return false
}

// Classify reports whether an expense element is in the 13th-month category.
func Classify(expenseElement string) bool {
	return ThirteenthMonthRules.Match(expenseElement)
}
