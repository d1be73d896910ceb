package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/repository"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

type fakeConsole struct {
	out      strings.Builder
	infos    []string
	warnings []string
	errors   []string
	success  []string
	bars     []types.ExecutionBar
	statuses int
}

func (c *fakeConsole) Print(a ...interface{}) { fmt.Fprint(&c.out, a...) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { fmt.Fprintf(&c.out, format, a...) }
func (c *fakeConsole) Println(a ...interface{}) { fmt.Fprintln(&c.out, a...) }

func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.success = append(c.success, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(string) types.StatusHandle {
	c.statuses++
	return noopHandle{}
}

func (c *fakeConsole) ProgressWithTotal(int) types.ProgressHandle { return noopHandle{} }

func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{console: c} }

func (c *fakeConsole) DisplayExecutionBars(bars []types.ExecutionBar) { c.bars = bars }

type noopHandle struct{}

func (noopHandle) Update(string) {}
func (noopHandle) Increment() {}
func (noopHandle) Stop() {}

type fakeTable struct {
	console *fakeConsole
	columns []string
	rows    [][]string
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }

func (t *fakeTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.rows = append(t.rows, row)
}

func (t *fakeTable) Render() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.columns, " | ") + "\n")
	for _, r := range t.rows {
		b.WriteString(strings.Join(r, " | ") + "\n")
	}
	return b.String()
}

type fakeLedger struct {
	lines   []entity.LedgerLine
	batchID string
	saves   int
	cleared bool
	loadErr error
	saveErr error
	closed  int
}

func (l *fakeLedger) Load(context.Context) ([]entity.LedgerLine, error) {
	if l.loadErr != nil {
		return []entity.LedgerLine{}, l.loadErr
	}
	return append([]entity.LedgerLine{}, l.lines...), nil
}

func (l *fakeLedger) Save(_ context.Context, batchID string, lines []entity.LedgerLine) error {
	if l.saveErr != nil {
		return l.saveErr
	}
	l.saves++
	l.batchID = batchID
	l.lines = append([]entity.LedgerLine{}, lines...)
	return nil
}

func (l *fakeLedger) Clear(context.Context) error {
	l.cleared = true
	l.lines = nil
	return nil
}

func (l *fakeLedger) Location() string { return "fake://ledger" }

func (l *fakeLedger) Close() error {
	l.closed++
	return nil
}

type fakeExtractor struct {
	result entity.ExtractionResult
	path   string
}

func (e *fakeExtractor) Extract(_ context.Context, filePath string) entity.ExtractionResult {
	e.path = filePath
	return e.result
}

type fakeExport struct {
	calls   []string
	reports []entity.AuditReport
	failPDF bool
}

func (e *fakeExport) record(kind string, report entity.AuditReport, filename, dir string) (string, error) {
	e.calls = append(e.calls, kind)
	e.reports = append(e.reports, report)
	return dir + "/" + filename + "." + kind, nil
}

func (e *fakeExport) ExportToCSV(r entity.AuditReport, f, d string) (string, error) {
	return e.record("csv", r, f, d)
}

func (e *fakeExport) ExportToJSON(r entity.AuditReport, f, d string) (string, error) {
	return e.record("json", r, f, d)
}

func (e *fakeExport) ExportToPDF(r entity.AuditReport, f, d string) (string, error) {
	if e.failPDF {
		e.calls = append(e.calls, "pdf")
		return "", fmt.Errorf("disk full")
	}
	return e.record("pdf", r, f, d)
}

func (e *fakeExport) ExportToXLSX(r entity.AuditReport, f, d string) (string, error) {
	return e.record("xlsx", r, f, d)
}

type fakeConfig struct {
	file *types.Config
	env  func(cfg *types.Config)
}

func (c *fakeConfig) LoadConfigFile(string) (*types.Config, error) {
	if c.file == nil {
		return nil, fmt.Errorf("no such file")
	}
	cp := *c.file
	return &cp, nil
}

func (c *fakeConfig) LoadEnvironment(cfg *types.Config, _ ...string) error {
	if c.env != nil {
		c.env(cfg)
	}
	return nil
}

type harness struct {
	uc        *DashboardUseCase
	console   *fakeConsole
	ledger    *fakeLedger
	extractor *fakeExtractor
	export    *fakeExport
	config    *fakeConfig
	opened    []types.StorageConfig
}

func newHarness() *harness {
	h := &harness{
		console:   &fakeConsole{},
		ledger:    &fakeLedger{},
		extractor: &fakeExtractor{},
		export:    &fakeExport{},
		config:    &fakeConfig{},
	}
	h.uc = NewDashboardUseCase(
		func(_ context.Context, cfg types.StorageConfig) (repository.LedgerRepository, error) {
			h.opened = append(h.opened, cfg)
			return h.ledger, nil
		},
		func(types.ExtractionConfig) repository.ExtractionRepository { return h.extractor },
		h.export,
		h.config,
		h.console,
	)
	h.uc.now = func() time.Time { return time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC) }
	h.uc.newBatchID = func() string { return "batch-0001" }
	return h
}

func dataset() []entity.LedgerLine {
	return []entity.LedgerLine{
		// Folha com 13º: média 1000/mês, 7 meses restantes, saldo 7000 -> projeção 0
		{ID: "1215", ExpenseElement: "3.1.90.11", ActionCode: "20TP", SourceCode: "00101",
			CreditTotal: 13000, CommittedAccrued: 12000, SettledThisMonth: 1000, SettledAccrued: 6000},
		// Custeio crítico: média 200/mês, 6 meses, saldo 300 -> projeção -900
		{ID: "1300", ExpenseElement: "3.3.90.39", ActionCode: "2001", SourceCode: "00000",
			CreditTotal: 1500, SettledThisMonth: 200, SettledAccrued: 1200},
		// Vínculo desconhecido sem execução
		{ID: "1400", ExpenseElement: "4.4.90.52", ActionCode: "1001", SourceCode: "7777",
			CreditTotal: 800},
	}
}

// successPaths extrai os caminhos das mensagens de exportação bem-sucedida.
func (c *fakeConsole) successPaths() []string {
	var paths []string
	for _, msg := range c.success {
		if i := strings.LastIndex(msg, ": "); i >= 0 {
			paths = append(paths, msg[i+2:])
		}
	}
	return paths
}
