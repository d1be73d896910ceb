package audit

import "github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"

// Params are the three inputs, besides the dataset, that drive a recomputation.
type Params struct {
	CurrentMonth int
	Basis        ProjectionBasis
	Criteria     Criteria
}

// Snapshot is one full recomputation of the dashboard view.
type Snapshot struct {
	Params   Params
	Lines    []entity.DerivedLedgerLine // every line of the dataset
	Filtered []entity.DerivedLedgerLine
	Groups   Groups
	Global   entity.GlobalSummary
	Labels   []string // sorted labels of the whole dataset, not only the filtered set
}

// Recompute derives, filters, groups and sums the whole dataset from scratch.
// The month is clamped to [1,12]; the input slice is never modified.
func Recompute(lines []entity.LedgerLine, p Params) Snapshot {
	p.CurrentMonth = ClampMonth(p.CurrentMonth)

	derived := ComputeAll(lines, p.CurrentMonth, p.Basis)
	filtered := Filter(derived, p.Criteria)

	return Snapshot{
		Params:   p,
		Lines:    derived,
		Filtered: filtered,
		Groups:   GroupAndSum(filtered),
		Global:   SumAll(filtered),
		Labels:   SourceLabels(derived),
	}
}
