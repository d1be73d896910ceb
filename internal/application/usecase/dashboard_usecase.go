package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/audit"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/repository"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/format"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
	"github.com/diillson/loa-audit-dashboard-go/pkg/console"
)

// LedgerRepositoryFactory opens the storage backend selected by the resolved configuration.
type LedgerRepositoryFactory func(ctx context.Context, cfg types.StorageConfig) (repository.LedgerRepository, error)

// ExtractionRepositoryFactory builds the extractor used by the import command.
type ExtractionRepositoryFactory func(cfg types.ExtractionConfig) repository.ExtractionRepository

// DashboardUseCase handles the main dashboard functionality.
type DashboardUseCase struct {
	openLedger    LedgerRepositoryFactory
	newExtraction ExtractionRepositoryFactory
	exportRepo    repository.ExportRepository
	configRepo    repository.ConfigRepository
	console       types.ConsoleInterface

	now        func() time.Time
	newBatchID func() string
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	openLedger LedgerRepositoryFactory,
	newExtraction ExtractionRepositoryFactory,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		openLedger:    openLedger,
		newExtraction: newExtraction,
		exportRepo:    exportRepo,
		configRepo:    configRepo,
		console:       console,
		now:           time.Now,
		newBatchID:    uuid.NewString,
	}
}

// loadDataset abre o backend, carrega o dataset e o fecha. Um payload
// corrompido vira aviso e dataset vazio.
func (uc *DashboardUseCase) loadDataset(ctx context.Context, cfg types.StorageConfig) ([]entity.LedgerLine, string, error) {
	repo, err := uc.openLedger(ctx, cfg)
	if err != nil {
		return nil, "", err
	}
	defer closeLedger(repo)

	lines, err := repo.Load(ctx)
	if errors.Is(err, types.ErrDatasetDiscarded) {
		uc.console.LogWarning("%s (%s)", err, repo.Location())
		return []entity.LedgerLine{}, repo.Location(), nil
	}
	if err != nil {
		return nil, "", err
	}
	return lines, repo.Location(), nil
}

// closeLedger libera backends que mantêm conexão aberta.
func closeLedger(repo repository.LedgerRepository) {
	if c, ok := repo.(io.Closer); ok {
		c.Close()
	}
}

// RunDashboard carrega o dataset, recalcula a visão e a exibe.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	status := uc.console.Status("Loading budget dataset...")
	lines, location, err := uc.loadDataset(ctx, args.Storage)
	status.Stop()
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return types.ErrNoDataset
	}

	snap, err := snapshot(lines, args)
	if err != nil {
		return err
	}

	if args.Source != "" && !containsLabel(snap.Labels, args.Source) {
		if hint := suggestLabel(snap.Labels, args.Source); hint != "" {
			uc.console.LogWarning("Source '%s' is not present in the dataset. Did you mean '%s'?", args.Source, hint)
		} else {
			uc.console.LogWarning("Source '%s' is not present in the dataset. Available: %s", args.Source, strings.Join(snap.Labels, ", "))
		}
	}

	uc.console.LogInfo("Dataset: %d budget lines from %s", len(lines), location)
	uc.renderHeader(snap)
	uc.renderSummary(snap.Global)

	if snap.Groups.Len() == 0 {
		uc.console.LogWarning("No budget lines match the selected filters.")
	}
	for _, group := range snap.Groups.All() {
		uc.renderGroup(group)
	}

	if args.ShowBars {
		uc.console.DisplayExecutionBars(executionBars(snap.Groups))
	}

	if len(args.ReportType) > 0 && args.ReportName != "" {
		uc.exportReports(buildReport(snap, uc.now()), args)
	}

	return nil
}

// RunExport gera os relatórios sem renderizar o dashboard. Sem tipo
// configurado, exporta CSV com o nome padrão.
func (uc *DashboardUseCase) RunExport(ctx context.Context, args *types.CLIArgs) error {
	lines, _, err := uc.loadDataset(ctx, args.Storage)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return types.ErrNoDataset
	}

	snap, err := snapshot(lines, args)
	if err != nil {
		return err
	}

	exportArgs := *args
	defaults := types.DefaultConfig()
	if len(exportArgs.ReportType) == 0 {
		exportArgs.ReportType = defaults.ReportType
	}
	if exportArgs.ReportName == "" {
		exportArgs.ReportName = defaults.ReportName
	}

	uc.console.LogInfo("Exporting %d of %d budget lines (month %02d)", len(snap.Filtered), len(lines), snap.Params.CurrentMonth)
	uc.exportReports(buildReport(snap, uc.now()), &exportArgs)
	return nil
}

func snapshot(lines []entity.LedgerLine, args *types.CLIArgs) (audit.Snapshot, error) {
	basis, err := audit.ParseProjectionBasis(args.Basis)
	if err != nil {
		return audit.Snapshot{}, err
	}

	return audit.Recompute(lines, audit.Params{
		CurrentMonth: args.Month,
		Basis:        basis,
		Criteria: audit.Criteria{
			FreeText:          args.Search,
			ActionCode:        args.Action,
			ActiveSourceLabel: args.Source,
		},
	}), nil
}

func (uc *DashboardUseCase) renderHeader(snap audit.Snapshot) {
	basis := "média mensal"
	if snap.Params.Basis == audit.BasisThisMonth {
		basis = "liquidado no mês"
	}

	title := fmt.Sprintf("Controle LOA 2026 | Mês %02d | Base de projeção: %s", snap.Params.CurrentMonth, basis)
	var filters []string
	if c := snap.Params.Criteria; !c.IsZero() {
		if c.FreeText != "" {
			filters = append(filters, "busca="+c.FreeText)
		}
		if c.ActionCode != "" {
			filters = append(filters, "ação="+c.ActionCode)
		}
		if c.ActiveSourceLabel != "" {
			filters = append(filters, "vínculo="+c.ActiveSourceLabel)
		}
	}
	if len(filters) > 0 {
		title += "\nFiltros: " + strings.Join(filters, ", ")
	}

	uc.console.Println(pterm.DefaultBox.WithTitle("Auditoria Orçamentária").Sprint(console.BrightCyan(title)))
}

// renderSummary exibe os quatro cartões do topo do dashboard.
func (uc *DashboardUseCase) renderSummary(global entity.GlobalSummary) {
	table := uc.console.CreateTable()
	table.AddColumn("Crédito Auditado")
	table.AddColumn("Saldo a Liquidar")
	table.AddColumn("Projeção Final")
	table.AddColumn("Fichas Críticas")

	projection := format.Money(global.ProjectedRemainingGap)
	if global.ProjectedRemainingGap < 0 {
		projection = console.BoldRed(projection)
	} else {
		projection = console.BrightGreen(projection)
	}

	critical := fmt.Sprintf("%d de %d", global.CriticalCount, global.LineCount)
	if global.CriticalCount > 0 {
		critical = console.BrightRed(critical)
	}

	table.AddRow(format.Money(global.CreditTotal), format.Money(global.RemainingToSettle), projection, critical)
	uc.console.Print(table.Render())
}

func (uc *DashboardUseCase) renderGroup(group entity.GroupSummary) {
	uc.console.Println()
	uc.console.Println(console.BrightMagenta(fmt.Sprintf("▸ %s (%d fichas)", group.Label, group.LineCount)))

	table := uc.console.CreateTable()
	for _, col := range []string{
		"Ficha", "Elemento", "Ação", "Crédito", "Liquidado Acum.", "Saldo a Liquidar",
		"Execução", "Base Mensal", "Projeção 31/12", "Esgotamento", "Folha", "Status",
	} {
		table.AddColumn(col)
	}

	for _, line := range group.Lines {
		gap := format.Money(line.ProjectedRemainingGap)
		status := console.BrightGreen(format.Status(false))
		if line.IsCritical {
			gap = console.BoldRed(gap)
			status = console.BrightRed(format.Status(true))
		}

		exhaustion := format.Months(line.MonthsUntilExhaustion, audit.SafeMonthsThreshold)
		if audit.IsSafe(line) {
			exhaustion = console.BrightGreen(exhaustion)
		} else {
			exhaustion = console.BrightYellow(exhaustion)
		}

		payroll := console.Dim(format.Thirteenth(false))
		if line.IsThirteenthMonth {
			payroll = console.BrightCyan(format.Thirteenth(true))
		}

		table.AddRow(
			line.ID,
			line.ExpenseElement,
			line.ActionCode,
			format.Money(line.CreditTotal),
			format.Money(line.SettledAccrued),
			format.Money(line.RemainingToSettle),
			format.Percent(line.ExecutionRatio),
			format.Money(line.MonthlyBasisRate),
			gap,
			exhaustion,
			payroll,
			status,
		)
	}

	table.AddRow(
		"Total", "", "",
		format.Money(group.CreditTotal),
		format.Money(group.SettledAccrued),
		format.Money(group.RemainingToSettle),
		"", "",
		format.Money(group.ProjectedRemainingGap),
		"", "", "",
	)
	uc.console.Print(table.Render())
}

// exportReports gera cada tipo pedido; falhas são registradas e não interrompem os demais.
func (uc *DashboardUseCase) exportReports(report entity.AuditReport, args *types.CLIArgs) {
	progress := uc.console.ProgressWithTotal(len(args.ReportType))
	defer progress.Stop()

	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
		case "xlsx":
			path, err = uc.exportRepo.ExportToXLSX(report, args.ReportName, args.Dir)
		default:
			err = fmt.Errorf("%w: %s", types.ErrUnsupportedReportType, reportType)
		}
		progress.Increment()

		if err != nil {
			uc.console.LogError("Failed to export to %s: %s", strings.ToUpper(reportType), err)
			continue
		}
		uc.console.LogSuccess("Successfully exported to %s: %s", strings.ToUpper(reportType), path)
	}
}

func buildReport(snap audit.Snapshot, now time.Time) entity.AuditReport {
	return entity.AuditReport{
		Title:        "Relatório de Auditoria Fiscal - LOA 2026",
		GeneratedAt:  now,
		CurrentMonth: snap.Params.CurrentMonth,
		Basis:        string(snap.Params.Basis),
		FreeText:     snap.Params.Criteria.FreeText,
		ActionCode:   snap.Params.Criteria.ActionCode,
		SourceLabel:  snap.Params.Criteria.ActiveSourceLabel,
		Lines:        snap.Filtered,
		Groups:       snap.Groups.All(),
		Global:       snap.Global,
	}
}

func executionBars(groups audit.Groups) []types.ExecutionBar {
	bars := make([]types.ExecutionBar, 0, groups.Len())
	for _, g := range groups.All() {
		critical := 0
		for _, l := range g.Lines {
			if l.IsCritical {
				critical++
			}
		}
		bars = append(bars, types.ExecutionBar{
			Label:    g.Label,
			Credit:   g.CreditTotal,
			Settled:  g.SettledAccrued,
			Critical: critical,
		})
	}
	return bars
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// suggestLabel returns the closest label by edit distance, or "" when nothing is close enough.
func suggestLabel(labels []string, input string) string {
	needle := strings.ToUpper(strings.TrimSpace(input))
	if needle == "" {
		return ""
	}
	// Tolerância proporcional ao tamanho, mínimo de 2 edições
	limit := max(2, len([]rune(needle))/3)

	best, bestDist := "", limit+1
	for _, l := range labels {
		d := levenshtein.ComputeDistance(needle, strings.ToUpper(l))
		if d < bestDist {
			best, bestDist = l, d
		}
	}
	return best
}
