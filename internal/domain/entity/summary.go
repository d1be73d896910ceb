package entity

// Totals holds the field-wise sums shared by group and global summaries.
type Totals struct {
	CreditTotal           float64 `json:"credito"`
	CommittedAccrued      float64 `json:"empenhado"`
	SettledThisMonth      float64 `json:"liqMes"`
	SettledAccrued        float64 `json:"liqAcum"`
	RemainingToSettle     float64 `json:"saldo"`
	ProjectedRemainingGap float64 `json:"difProjetada"`
}

// GroupSummary aggregates the lines that share one resolved funding-source label.
type GroupSummary struct {
	Label     string              `json:"label"`
	LineCount int                 `json:"lineCount"`
	Lines     []DerivedLedgerLine `json:"-"`
	Totals
}

// GlobalSummary aggregates the whole filtered set.
type GlobalSummary struct {
	Totals
	LineCount     int `json:"lineCount"`
	CriticalCount int `json:"criticalCount"`
}
