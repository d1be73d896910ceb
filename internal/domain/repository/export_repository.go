package repository

import (
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report entity.AuditReport, filename, outputDir string) (string, error)
	ExportToJSON(report entity.AuditReport, filename, outputDir string) (string, error)
	ExportToPDF(report entity.AuditReport, filename, outputDir string) (string, error)
	ExportToXLSX(report entity.AuditReport, filename, outputDir string) (string, error)
}
