package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/audit"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/format"
)

// XLSXSheetName é o nome da planilha gerada.
const XLSXSheetName = "Auditoria LOA 2026"

func (r *ExportRepositoryImpl) ExportToXLSX(report entity.AuditReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheetName); err != nil {
		return "", fmt.Errorf("error naming XLSX sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1E293B"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("error creating XLSX style: %w", err)
	}
	moneyFormat := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return "", fmt.Errorf("error creating XLSX style: %w", err)
	}

	for col, header := range lineHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(XLSXSheetName, cell, header); err != nil {
			return "", fmt.Errorf("error writing XLSX header: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(lineHeaders), 1)
	if err := f.SetCellStyle(XLSXSheetName, "A1", lastHeader, headerStyle); err != nil {
		return "", fmt.Errorf("error styling XLSX header: %w", err)
	}

	for i, line := range report.Lines {
		row := i + 2
		values := []interface{}{
			line.ID,
			line.ExpenseElement,
			line.ActionCode,
			audit.ResolveSource(line.SourceCode),
			line.CreditTotal,
			line.CommittedAccrued,
			line.SettledThisMonth,
			line.SettledAccrued,
			line.RemainingToSettle,
			line.ProjectedRemainingGap,
			format.Status(line.IsCritical),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(XLSXSheetName, cell, v); err != nil {
				return "", fmt.Errorf("error writing XLSX row %d: %w", row, err)
			}
		}
	}

	if len(report.Lines) > 0 {
		first, _ := excelize.CoordinatesToCellName(5, 2)
		last, _ := excelize.CoordinatesToCellName(10, len(report.Lines)+1)
		if err := f.SetCellStyle(XLSXSheetName, first, last, moneyStyle); err != nil {
			return "", fmt.Errorf("error styling XLSX values: %w", err)
		}
	}

	if err := f.SetColWidth(XLSXSheetName, "A", "C", 12); err != nil {
		return "", err
	}
	if err := f.SetColWidth(XLSXSheetName, "D", "D", 32); err != nil {
		return "", err
	}
	if err := f.SetColWidth(XLSXSheetName, "E", "K", 18); err != nil {
		return "", err
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}
