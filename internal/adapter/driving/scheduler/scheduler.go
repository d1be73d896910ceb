// Package scheduler runs the report export on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

// DefaultSpec exporta às 07:00 de segunda a sexta.
const DefaultSpec = "0 0 7 * * 1-5"

// ReportRunner is the part of the dashboard use case the scheduler drives.
type ReportRunner interface {
	ResolveArgs(args *types.CLIArgs) (*types.CLIArgs, error)
	RunExport(ctx context.Context, args *types.CLIArgs) error
}

// Scheduler manages the cron task that exports the audit reports.
type Scheduler struct {
	Cron    *cron.Cron
	Runner  ReportRunner
	Console types.ConsoleInterface
	Ctx     context.Context

	// args guarda só as flags explícitas; a resolução é refeita a cada
	// execução para que o mês acompanhe o calendário.
	args types.CLIArgs
}

// NewScheduler creates a new Scheduler. Both five-field and six-field
// (with seconds) specs are accepted, as well as descriptors like @daily.
func NewScheduler(ctx context.Context, runner ReportRunner, console types.ConsoleInterface, args types.CLIArgs) *Scheduler {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &Scheduler{
		Cron:    cron.New(cron.WithParser(parser)),
		Runner:  runner,
		Console: console,
		Ctx:     ctx,
		args:    args,
	}
}

// Register adds the export task for the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.exportTask); err != nil {
		return fmt.Errorf("register export task %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	for _, entry := range s.Cron.Entries() {
		s.Console.LogInfo("Scheduler started, next export at %s", entry.Next.Format("2006-01-02 15:04:05"))
	}
}

// Stop waits for a running export to finish and stops the scheduler.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Console.LogInfo("Scheduler stopped")
}

// RunNow executes the export task immediately.
func (s *Scheduler) RunNow() error {
	return s.runExport()
}

func (s *Scheduler) exportTask() {
	if err := s.runExport(); err != nil {
		s.Console.LogError("Scheduled export failed: %s", err)
	}
}

func (s *Scheduler) runExport() error {
	args := s.args
	resolved, err := s.Runner.ResolveArgs(&args)
	if err != nil {
		return err
	}

	err = s.Runner.RunExport(s.Ctx, resolved)
	if errors.Is(err, types.ErrNoDataset) {
		// Sem dados não é falha do agendamento
		s.Console.LogWarning("%s", err)
		return nil
	}
	return err
}
