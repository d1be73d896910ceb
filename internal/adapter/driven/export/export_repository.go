package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/audit"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/repository"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/format"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// lineHeaders são as colunas de cada ficha em CSV e XLSX.
var lineHeaders = []string{
	"Ficha", "Elemento", "Ação", "Vínculo",
	"Crédito Total", "Empenhado Acum.", "Liquidado Mês", "Liquidado Acum.",
	"Saldo a Liquidar", "Projeção 31/12", "Status",
}

func (r *ExportRepositoryImpl) ExportToCSV(report entity.AuditReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(lineHeaders); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, line := range report.Lines {
		record := []string{
			cleanRichTags(line.ID),
			cleanRichTags(line.ExpenseElement),
			cleanRichTags(line.ActionCode),
			audit.ResolveSource(line.SourceCode),
			csvAmount(line.CreditTotal),
			csvAmount(line.CommittedAccrued),
			csvAmount(line.SettledThisMonth),
			csvAmount(line.SettledAccrued),
			csvAmount(line.RemainingToSettle),
			csvAmount(line.ProjectedRemainingGap),
			format.Status(line.IsCritical),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report entity.AuditReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	if report.Lines == nil {
		report.Lines = []entity.DerivedLedgerLine{}
	}
	if report.Groups == nil {
		report.Groups = []entity.GroupSummary{}
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// csvAmount usa ponto decimal para que planilhas importem o valor como número.
func csvAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
