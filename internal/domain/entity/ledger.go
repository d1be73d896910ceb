package entity

// LedgerLine represents one budget item (ficha) extracted from the statement.
// JSON keys follow the persisted dataset format so saved data round-trips unchanged.
type LedgerLine struct {
	ID               string  `json:"id"`
	ExpenseElement   string  `json:"elemento"`
	ActionCode       string  `json:"funcional"`
	SourceCode       string  `json:"vinculo"`
	CreditTotal      float64 `json:"totalCredito"`
	CommittedAccrued float64 `json:"empenhadoAcumulado"`
	SettledThisMonth float64 `json:"liquidadoMes"`
	SettledAccrued   float64 `json:"liquidadoAcumulado"`
	AvailableBalance float64 `json:"saldoOrcamentario"` // informativo, não entra em nenhum cálculo
	Notes            string  `json:"observacoes,omitempty"`
}

// DerivedLedgerLine is a LedgerLine plus every metric computed from it for the
// selected month and projection basis.
type DerivedLedgerLine struct {
	LedgerLine

	RemainingToSettle       float64 `json:"saldoALiquidar"`
	ExecutionRatio          float64 `json:"percentualExecucao"`
	IsThirteenthMonth       bool    `json:"is13Meses"`
	MonthlyAverageSettled   float64 `json:"mediaLiquidada"`
	MonthlyAverageCommitted float64 `json:"mediaEmpenhada"`
	MonthlyBasisRate        float64 `json:"baseCalculo"`
	RemainingMonths         int     `json:"mesesParaExecutar"`
	ProjectedFutureSpend    float64 `json:"gastoFuturoProjetado"`
	ProjectedRemainingGap   float64 `json:"valorDiferencaProjetada"`
	IsCritical              bool    `json:"statusCritico"`
	MonthsUntilExhaustion   float64 `json:"previsaoEsgotamento"`
}
