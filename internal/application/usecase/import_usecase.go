package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/audit"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/format"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

// RunImport extrai as fichas do documento e substitui o dataset persistido.
// O store só é gravado depois de uma extração bem-sucedida e não vazia.
func (uc *DashboardUseCase) RunImport(ctx context.Context, args *types.CLIArgs) (entity.ImportSummary, error) {
	if args.ImportFile == "" {
		return entity.ImportSummary{}, errors.New("no statement file given")
	}
	info, err := os.Stat(args.ImportFile)
	if err != nil {
		return entity.ImportSummary{}, fmt.Errorf("error accessing statement file: %w", err)
	}
	if info.IsDir() {
		return entity.ImportSummary{}, fmt.Errorf("%s is a directory, not a file", args.ImportFile)
	}

	repo, err := uc.openLedger(ctx, args.Storage)
	if err != nil {
		return entity.ImportSummary{}, err
	}
	defer closeLedger(repo)

	status := uc.console.Status(fmt.Sprintf("Extracting budget lines from %s...", filepath.Base(args.ImportFile)))
	result := uc.newExtraction(args.Extraction).Extract(ctx, args.ImportFile)
	status.Stop()

	if reason, failed := result.Failed(); failed {
		return entity.ImportSummary{}, fmt.Errorf("%w: %s", types.ErrExtractionFailed, reason)
	}
	lines, _ := result.Lines()
	if len(lines) == 0 {
		return entity.ImportSummary{}, types.ErrNoRecordsExtracted
	}

	summary := entity.ImportSummary{
		BatchID:     uc.newBatchID(),
		Source:      filepath.Base(args.ImportFile),
		Count:       len(lines),
		TotalCredit: audit.SumAll(audit.ComputeAll(lines, audit.MonthsInYear, audit.BasisAverage)).CreditTotal,
		ImportedAt:  uc.now(),
	}

	if err := repo.Save(ctx, summary.BatchID, lines); err != nil {
		return entity.ImportSummary{}, fmt.Errorf("error saving dataset: %w", err)
	}

	uc.console.LogSuccess("Imported %d budget lines (%s audited credit) into %s", summary.Count, format.Money(summary.TotalCredit), repo.Location())
	uc.console.LogInfo("Batch %s", summary.BatchID)
	return summary, nil
}

// RunClear remove o dataset persistido.
func (uc *DashboardUseCase) RunClear(ctx context.Context, args *types.CLIArgs) error {
	repo, err := uc.openLedger(ctx, args.Storage)
	if err != nil {
		return err
	}
	defer closeLedger(repo)

	if err := repo.Clear(ctx); err != nil {
		return err
	}
	uc.console.LogSuccess("Budget dataset removed from %s", repo.Location())
	return nil
}

// RunSources lista os vínculos presentes no dataset, com contagem e crédito.
func (uc *DashboardUseCase) RunSources(ctx context.Context, args *types.CLIArgs) error {
	lines, _, err := uc.loadDataset(ctx, args.Storage)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return types.ErrNoDataset
	}

	derived := audit.ComputeAll(lines, audit.ClampMonth(args.Month), audit.BasisAverage)
	groups := audit.GroupAndSum(derived)

	table := uc.console.CreateTable()
	table.AddColumn("Vínculo")
	table.AddColumn("Fichas")
	table.AddColumn("Crédito")

	for _, label := range audit.SourceLabels(derived) {
		g, _ := groups.Get(label)
		table.AddRow(label, g.LineCount, format.Money(g.CreditTotal))
	}
	uc.console.Print(table.Render())
	return nil
}
