package entity

import "time"

// AuditReport is the exportable form of one dashboard view.
type AuditReport struct {
	Title        string              `json:"title"`
	GeneratedAt  time.Time           `json:"generatedAt"`
	CurrentMonth int                 `json:"currentMonth"`
	Basis        string              `json:"basis"`
	FreeText     string              `json:"freeText,omitempty"`
	ActionCode   string              `json:"actionCode,omitempty"`
	SourceLabel  string              `json:"sourceLabel,omitempty"`
	Lines        []DerivedLedgerLine `json:"lines"`
	Groups       []GroupSummary      `json:"groups"`
	Global       GlobalSummary       `json:"global"`
}
