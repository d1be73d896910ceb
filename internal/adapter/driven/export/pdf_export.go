package export

import (
	"fmt"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/audit"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/format"
)

type pdfColumn struct {
	title string
	width float64
	align string
}

// A4 paisagem tem 277mm úteis com margens de 10mm.
var pdfColumns = []pdfColumn{
	{"Ficha", 18, "L"},
	{"Elemento", 28, "L"},
	{"Ação", 22, "L"},
	{"Crédito", 33, "R"},
	{"Liq. Acum.", 33, "R"},
	{"Saldo Liq.", 33, "R"},
	{"Projeção 31/12", 34, "R"},
	{"Esgotamento", 26, "C"},
	{"Folha", 24, "C"},
	{"Status", 26, "C"},
}

func (r *ExportRepositoryImpl) ExportToPDF(report entity.AuditReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{30, 41, 59}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	criticalColor := [3]int{192, 0, 0}
	safeColor := [3]int{0, 128, 0}

	generatedAt := report.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = r.now()
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by LOA Audit Dashboard | %s", generatedAt.Format("2006-01-02 15:04"))
		pdf.CellFormat(0, 8, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// Cabeçalho
	title := report.Title
	if title == "" {
		title = "Relatório de Auditoria Fiscal - LOA 2026"
	}
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  "+title), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 7, tr("  "+reportSubtitle(report)), "", 1, "L", true, 0, "")
	pdf.Ln(4)

	// Cartões de resumo
	cards := [][2]string{
		{"Crédito Auditado", format.Money(report.Global.CreditTotal)},
		{"Saldo a Liquidar", format.Money(report.Global.RemainingToSettle)},
		{"Projeção Final", format.Money(report.Global.ProjectedRemainingGap)},
		{"Fichas Críticas", fmt.Sprintf("%d de %d", report.Global.CriticalCount, report.Global.LineCount)},
	}
	cardWidth := 277.0 / float64(len(cards))
	pdf.SetFont("Arial", "B", 8)
	pdf.SetTextColor(100, 100, 100)
	for _, c := range cards {
		pdf.CellFormat(cardWidth, 6, tr(c[0]), "LTR", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	for i, c := range cards {
		if i == 2 && report.Global.ProjectedRemainingGap < 0 {
			pdf.SetTextColor(criticalColor[0], criticalColor[1], criticalColor[2])
		}
		pdf.CellFormat(cardWidth, 9, tr(c[1]), "LBR", 0, "L", false, 0, "")
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}
	pdf.Ln(12)

	if len(report.Groups) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 8, tr("Nenhuma ficha corresponde aos filtros selecionados."), "", 1, "L", false, 0, "")
	}

	for _, group := range report.Groups {
		// Título do grupo
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s (%d fichas)", cleanRichTags(group.Label), group.LineCount)), "B", 1, "L", false, 0, "")
		pdf.Ln(1)

		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, tr(col.title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for _, line := range group.Lines {
			cells := []string{
				line.ID,
				line.ExpenseElement,
				line.ActionCode,
				format.Number(line.CreditTotal),
				format.Number(line.SettledAccrued),
				format.Number(line.RemainingToSettle),
				format.Number(line.ProjectedRemainingGap),
				format.Months(line.MonthsUntilExhaustion, audit.SafeMonthsThreshold),
				format.Thirteenth(line.IsThirteenthMonth),
				format.Status(line.IsCritical),
			}
			for i, col := range pdfColumns {
				switch {
				case col.title == "Status" && line.IsCritical:
					pdf.SetTextColor(criticalColor[0], criticalColor[1], criticalColor[2])
				case col.title == "Status":
					pdf.SetTextColor(safeColor[0], safeColor[1], safeColor[2])
				case col.title == "Projeção 31/12" && line.ProjectedRemainingGap < 0:
					pdf.SetTextColor(criticalColor[0], criticalColor[1], criticalColor[2])
				default:
					pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
				}
				pdf.CellFormat(col.width, 6, tr(cleanRichTags(cells[i])), "1", 0, col.align, false, 0, "")
			}
			pdf.Ln(-1)
		}

		// Totais do grupo
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		labelWidth := pdfColumns[0].width + pdfColumns[1].width + pdfColumns[2].width
		pdf.CellFormat(labelWidth, 6, "Total", "1", 0, "L", true, 0, "")
		totals := []float64{group.CreditTotal, group.SettledAccrued, group.RemainingToSettle, group.ProjectedRemainingGap}
		for i, v := range totals {
			pdf.CellFormat(pdfColumns[3+i].width, 6, tr(format.Number(v)), "1", 0, "R", true, 0, "")
		}
		rest := 0.0
		for _, col := range pdfColumns[7:] {
			rest += col.width
		}
		pdf.CellFormat(rest, 6, "", "1", 1, "L", true, 0, "")
		pdf.Ln(6)
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func reportSubtitle(report entity.AuditReport) string {
	basis := "média mensal"
	if report.Basis == string(audit.BasisThisMonth) {
		basis = "liquidado no mês"
	}
	s := fmt.Sprintf("Mês de referência: %02d | Base de projeção: %s", report.CurrentMonth, basis)
	if report.FreeText != "" {
		s += fmt.Sprintf(" | Busca: %s", report.FreeText)
	}
	if report.ActionCode != "" {
		s += fmt.Sprintf(" | Ação: %s", report.ActionCode)
	}
	if report.SourceLabel != "" {
		s += fmt.Sprintf(" | Vínculo: %s", report.SourceLabel)
	}
	return s
}
