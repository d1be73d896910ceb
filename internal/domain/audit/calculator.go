package audit

import (
	"fmt"
	"strings"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

// ProjectionBasis selects the monthly run rate used to project year-end spend.
type ProjectionBasis string

const (
	// BasisAverage projects with the accrued settled amount divided by the current month.
	BasisAverage ProjectionBasis = "average"
	// BasisThisMonth projects with the amount settled in the current month.
	BasisThisMonth ProjectionBasis = "thisMonth"
)

const (
	// MonthsInYear is the length of the fiscal calendar.
	MonthsInYear = 12
	// ExhaustionSentinel is reported as MonthsUntilExhaustion when nothing is being
	// spent. Display code reads any value above SafeMonthsThreshold as "safe".
	ExhaustionSentinel = 99.0
	// SafeMonthsThreshold is the exhaustion horizon beyond which a line is safe.
	SafeMonthsThreshold = 12.0
)

// ParseProjectionBasis accepts "average"/"thisMonth" and the short forms
// "media"/"mes", case-insensitively.
func ParseProjectionBasis(s string) (ProjectionBasis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "average", "media", "média", "":
		return BasisAverage, nil
	case "thismonth", "this-month", "mes", "mês", "month":
		return BasisThisMonth, nil
	}
	return "", fmt.Errorf("%w: %q", types.ErrInvalidBasis, s)
}

// ClampMonth forces a month selector into [1,12].
func ClampMonth(month int) int {
	if month < 1 {
		return 1
	}
	if month > MonthsInYear {
		return MonthsInYear
	}
	return month
}

// Compute derives every analytical metric for one ledger line. currentMonth must
// already be in [1,12] (see ClampMonth); the function performs no other checks
// and never fails.
func Compute(line entity.LedgerLine, currentMonth int, basis ProjectionBasis) entity.DerivedLedgerLine {
	month := float64(currentMonth)

	remaining := line.CreditTotal - line.SettledAccrued
	avgSettled := line.SettledAccrued / month
	avgCommitted := line.CommittedAccrued / month

	rate := line.SettledThisMonth
	if basis == BasisAverage {
		rate = avgSettled
	}

	is13 := Classify(line.ExpenseElement)
	remainingMonths := MonthsInYear - currentMonth
	if is13 {
		remainingMonths++
	}

	futureSpend := rate * float64(remainingMonths)
	gap := remaining - futureSpend

	exhaustion := ExhaustionSentinel
	if rate > 0 {
		exhaustion = remaining / rate
	}

	var ratio float64
	if line.CreditTotal > 0 {
		ratio = line.SettledAccrued / line.CreditTotal * 100
	}

	return entity.DerivedLedgerLine{
		LedgerLine:              line,
		RemainingToSettle:       remaining,
		ExecutionRatio:          ratio,
		IsThirteenthMonth:       is13,
		MonthlyAverageSettled:   avgSettled,
		MonthlyAverageCommitted: avgCommitted,
		MonthlyBasisRate:        rate,
		RemainingMonths:         remainingMonths,
		ProjectedFutureSpend:    futureSpend,
		ProjectedRemainingGap:   gap,
		IsCritical:              gap < 0 && rate > 0,
		MonthsUntilExhaustion:   exhaustion,
	}
}

// ComputeAll derives every line of a dataset. The result is always a new slice.
func ComputeAll(lines []entity.LedgerLine, currentMonth int, basis ProjectionBasis) []entity.DerivedLedgerLine {
	out := make([]entity.DerivedLedgerLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, Compute(l, currentMonth, basis))
	}
	return out
}

// IsSafe reports whether a line's exhaustion horizon reaches past year end.
func IsSafe(d entity.DerivedLedgerLine) bool {
	return d.MonthsUntilExhaustion > SafeMonthsThreshold
}
