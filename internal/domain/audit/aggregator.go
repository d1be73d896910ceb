package audit

import (
	"math"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Groups is the ordered result of GroupAndSum. Groups keep the order in which
// their label was first seen.
type Groups struct {
	order   []string
	byLabel map[string]*entity.GroupSummary
}

// Len returns the number of groups.
func (g Groups) Len() int { return len(g.order) }

// Labels returns group labels in first-seen order.
func (g Groups) Labels() []string {
	return append([]string(nil), g.order...)
}

// Get returns the summary for label.
func (g Groups) Get(label string) (entity.GroupSummary, bool) {
	s, ok := g.byLabel[label]
	if !ok {
		return entity.GroupSummary{}, false
	}
	return *s, true
}

// All returns every group summary in first-seen order.
func (g Groups) All() []entity.GroupSummary {
	out := make([]entity.GroupSummary, 0, len(g.order))
	for _, label := range g.order {
		out = append(out, *g.byLabel[label])
	}
	return out
}

// accumulator sums in decimal so that group totals add up to the global total
// exactly before the final conversion to float64.
type accumulator struct {
	credit, committed, settledMonth, settled, remaining, gap decimal.Decimal
}

func (a *accumulator) add(l entity.DerivedLedgerLine) {
	a.credit = a.credit.Add(finite(l.CreditTotal))
	a.committed = a.committed.Add(finite(l.CommittedAccrued))
	a.settledMonth = a.settledMonth.Add(finite(l.SettledThisMonth))
	a.settled = a.settled.Add(finite(l.SettledAccrued))
	a.remaining = a.remaining.Add(finite(l.RemainingToSettle))
	a.gap = a.gap.Add(finite(l.ProjectedRemainingGap))
}

func (a *accumulator) totals() entity.Totals {
	return entity.Totals{
		CreditTotal:           a.credit.InexactFloat64(),
		CommittedAccrued:      a.committed.InexactFloat64(),
		SettledThisMonth:      a.settledMonth.InexactFloat64(),
		SettledAccrued:        a.settled.InexactFloat64(),
		RemainingToSettle:     a.remaining.InexactFloat64(),
		ProjectedRemainingGap: a.gap.InexactFloat64(),
	}
}

// finite converts f to decimal. NaN and ±Inf (reachable only with an unclamped
// month of 0) count as zero.
func finite(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// GroupAndSum groups lines by resolved funding-source label and sums each group.
func GroupAndSum(lines []entity.DerivedLedgerLine) Groups {
	g := Groups{byLabel: make(map[string]*entity.GroupSummary)}
	accs := make(map[string]*accumulator)

	for _, l := range lines {
		label := ResolveSource(l.SourceCode)
		s, ok := g.byLabel[label]
		if !ok {
			s = &entity.GroupSummary{Label: label}
			g.byLabel[label] = s
			accs[label] = &accumulator{}
			g.order = append(g.order, label)
		}
		s.Lines = append(s.Lines, l)
		s.LineCount++
		accs[label].add(l)
	}

	for label, acc := range accs {
		g.byLabel[label].Totals = acc.totals()
	}
	return g
}

// SumAll reduces the whole set to a GlobalSummary.
func SumAll(lines []entity.DerivedLedgerLine) entity.GlobalSummary {
	var acc accumulator
	var critical int
	for _, l := range lines {
		acc.add(l)
		if l.IsCritical {
			critical++
		}
	}
	return entity.GlobalSummary{
		Totals:        acc.totals(),
		LineCount:     len(lines),
		CriticalCount: critical,
	}
}
