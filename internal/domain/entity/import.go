package entity

import "time"

// ImportSummary describes a dataset that replaced the stored one.
type ImportSummary struct {
	BatchID     string    `json:"batchId"`
	Source      string    `json:"source"`
	Count       int       `json:"count"`
	TotalCredit float64   `json:"total"`
	ImportedAt  time.Time `json:"importedAt"`
}
