package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/audit"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
)

var fixedNow = time.Date(2026, 6, 30, 14, 5, 9, 0, time.UTC)

func newTestRepo() *ExportRepositoryImpl {
	return &ExportRepositoryImpl{now: func() time.Time { return fixedNow }}
}

func sampleReport() entity.AuditReport {
	lines := []entity.LedgerLine{
		{ID: "1215", ExpenseElement: "3.1.90.11", ActionCode: "20TP", SourceCode: "1000",
			CreditTotal: 13000, CommittedAccrued: 12000, SettledThisMonth: 1000, SettledAccrued: 6000},
		{ID: "1300", ExpenseElement: "3.3.90.39", ActionCode: "2001", SourceCode: "7777",
			CreditTotal: 500, SettledAccrued: 100},
	}
	snap := audit.Recompute(lines, audit.Params{CurrentMonth: 6, Basis: audit.BasisAverage})
	return entity.AuditReport{
		Title:        "Relatório de Auditoria Fiscal - LOA 2026",
		GeneratedAt:  fixedNow,
		CurrentMonth: 6,
		Basis:        string(audit.BasisAverage),
		Lines:        snap.Filtered,
		Groups:       snap.Groups.All(),
		Global:       snap.Global,
	}
}

func TestGenerateFilename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	name, err := newTestRepo().generateFilename("auditoria", dir, "csv")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "auditoria_20260630_140509.csv"), name)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestCleanRichTags(t *testing.T) {
	require.Equal(t, "CRÍTICO", cleanRichTags("[red]CRÍTICO[/red]"))
	require.Equal(t, "ok", cleanRichTags("\x1b[32mok\x1b[0m"))
}

func TestExportToCSV(t *testing.T) {
	path, err := newTestRepo().ExportToCSV(sampleReport(), "auditoria", t.TempDir())
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, lineHeaders, rows[0])

	require.Equal(t, []string{
		"1215", "3.1.90.11", "20TP", audit.ResolveSource("1000"),
		"13000.00", "12000.00", "1000.00", "6000.00", "7000.00", "0.00", "SEGURO",
	}, rows[1])
	require.Equal(t, "Fonte 7777", rows[2][3])
}

func TestExportToJSON(t *testing.T) {
	path, err := newTestRepo().ExportToJSON(sampleReport(), "auditoria", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.AuditReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Lines, 2)
	require.Equal(t, "1215", decoded.Lines[0].ID)
	require.Equal(t, 2, decoded.Global.LineCount)
	require.Len(t, decoded.Groups, 2)
	require.True(t, strings.Contains(string(data), "\n  \"title\""))
}

func TestExportToJSON_EmptyReportHasArrays(t *testing.T) {
	path, err := newTestRepo().ExportToJSON(entity.AuditReport{}, "vazio", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"lines": []`)
	require.Contains(t, string(data), `"groups": []`)
}

func TestExportToPDF(t *testing.T) {
	report := sampleReport()
	report.FreeText = "3.1"
	path, err := newTestRepo().ExportToPDF(report, "relatorio", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "%PDF-"))

	path, err = newTestRepo().ExportToPDF(entity.AuditReport{}, "vazio", t.TempDir())
	require.NoError(t, err)
	require.FileExists(t, path)
}

func TestExportToXLSX(t *testing.T) {
	path, err := newTestRepo().ExportToXLSX(sampleReport(), "auditoria", t.TempDir())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{XLSXSheetName}, f.GetSheetList())

	rows, err := f.GetRows(XLSXSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, lineHeaders, rows[0])
	require.Equal(t, "1215", rows[1][0])
	require.Equal(t, "SEGURO", rows[1][10])

	credit, err := f.GetCellValue(XLSXSheetName, "E2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Equal(t, "13000", credit)
}

func TestReportSubtitle(t *testing.T) {
	s := reportSubtitle(entity.AuditReport{CurrentMonth: 3, Basis: "thisMonth", ActionCode: "20TP", SourceLabel: "Fonte 9"})
	require.Equal(t, "Mês de referência: 03 | Base de projeção: liquidado no mês | Ação: 20TP | Vínculo: Fonte 9", s)
}
