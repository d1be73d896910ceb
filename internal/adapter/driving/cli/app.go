package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/diillson/loa-audit-dashboard-go/internal/adapter/driving/scheduler"
	"github.com/diillson/loa-audit-dashboard-go/internal/application/usecase"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
	"github.com/diillson/loa-audit-dashboard-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	console          types.ConsoleInterface
	version          string
	checkUpdates     bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, console types.ConsoleInterface) *CLIApp {
	app := &CLIApp{
		version:      versionStr,
		console:      console,
		checkUpdates: true,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "loa-audit",
		Short:         "Controle LOA 2026 - budget execution audit dashboard",
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runDashboard,
	}

	rootCmd.SetVersionTemplate(`{{printf "LOA Audit Dashboard version: %s\n" .Version}}`)

	// Flags globais, válidas para todos os subcomandos
	pf := rootCmd.PersistentFlags()
	pf.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	pf.String("storage", "", "Storage backend for the dataset: file, sqlite, s3 (default: file)")
	pf.String("storage-path", "", "Directory (file) or database path (sqlite) for the dataset")
	pf.IntP("month", "m", 0, "Reference month 1-12 (default: current calendar month)")

	// Flags do dashboard
	addReportFlags(rootCmd.Flags())
	rootCmd.Flags().Bool("bars", false, "Display execution bars per funding source")

	rootCmd.AddCommand(app.newImportCmd(), app.newClearCmd(), app.newSourcesCmd(), app.newScheduleCmd())

	app.rootCmd = rootCmd
	return app
}

// addReportFlags registra os filtros e as opções de exportação.
func addReportFlags(f *pflag.FlagSet) {
	f.StringP("basis", "b", "", "Projection basis: average (média) or thisMonth (mês)")
	f.StringP("search", "s", "", "Free-text filter on budget line id, expense element or action code")
	f.StringP("action", "f", "", "Filter by action code (substring)")
	f.StringP("source", "v", "", "Filter by funding source label, e.g. \"70% FUNDEB\"")
	f.StringP("report-name", "n", "", "Base name for the report files (without extension)")
	f.StringSliceP("report-type", "y", nil, "Report types: csv, json, pdf, xlsx")
	f.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
}

func (app *CLIApp) newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <statement.pdf|lines.json>",
		Short: "Extract budget lines from a statement and replace the stored dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  app.runImport,
	}
	cmd.Flags().String("model", "", "Model used to read the statement")
	cmd.Flags().Int("thinking-budget", 0, "Thinking budget for the extraction model")
	cmd.Flags().Int("timeout", 0, "Extraction timeout in seconds")
	return cmd
}

func (app *CLIApp) newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored budget dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := app.resolve(cmd)
			if err != nil {
				return err
			}
			return app.dashboardUseCase.RunClear(cmd.Context(), args)
		},
	}
}

func (app *CLIApp) newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the funding sources present in the stored dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := app.resolve(cmd)
			if err != nil {
				return err
			}
			return app.handleNoDataset(app.dashboardUseCase.RunSources(cmd.Context(), args))
		},
	}
}

func (app *CLIApp) newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Export the audit reports periodically until interrupted",
		Long: "Export the audit reports on a cron schedule. The month follows the calendar\n" +
			"unless set explicitly; without report types a CSV is written.",
		Args: cobra.NoArgs,
		RunE: app.runSchedule,
	}
	addReportFlags(cmd.Flags())
	cmd.Flags().String("cron", scheduler.DefaultSpec, "Cron spec (5 or 6 fields, or descriptors like @daily)")
	cmd.Flags().Bool("run-now", false, "Export once immediately before waiting for the schedule")
	return cmd
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.ExecuteContext(context.Background())
}

// parseArgs lê apenas as flags informadas pelo usuário; o resto vem do
// ambiente, do arquivo de configuração ou dos padrões.
func parseArgs(flags *pflag.FlagSet) (*types.CLIArgs, error) {
	args := &types.CLIArgs{}

	str := func(name string, dst *string) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	num := func(name string, dst *int) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}

	str("config-file", &args.ConfigFile)
	str("storage", &args.Storage.Backend)
	str("storage-path", &args.Storage.Path)
	num("month", &args.Month)
	str("basis", &args.Basis)
	str("search", &args.Search)
	str("action", &args.Action)
	str("source", &args.Source)
	str("report-name", &args.ReportName)
	str("dir", &args.Dir)
	str("model", &args.Extraction.Model)
	num("thinking-budget", &args.Extraction.ThinkingBudget)
	num("timeout", &args.Extraction.TimeoutSeconds)

	if flags.Lookup("report-type") != nil && flags.Changed("report-type") {
		args.ReportType, _ = flags.GetStringSlice("report-type")
	}
	if flags.Lookup("bars") != nil {
		args.ShowBars, _ = flags.GetBool("bars")
	}

	if flags.Changed("month") && (args.Month < 1 || args.Month > 12) {
		return nil, types.ErrInvalidMonth
	}

	if args.Dir != "" {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

func (app *CLIApp) resolve(cmd *cobra.Command) (*types.CLIArgs, error) {
	args, err := parseArgs(cmd.Flags())
	if err != nil {
		return nil, err
	}
	return app.dashboardUseCase.ResolveArgs(args)
}

// runDashboard é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runDashboard(cmd *cobra.Command, _ []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	if app.checkUpdates {
		go version.CheckLatestVersion(cmd.Context(), app.version)
	}

	args, err := app.resolve(cmd)
	if err != nil {
		return err
	}

	return app.handleNoDataset(app.dashboardUseCase.RunDashboard(cmd.Context(), args))
}

func (app *CLIApp) runSchedule(cmd *cobra.Command, _ []string) error {
	args, err := parseArgs(cmd.Flags())
	if err != nil {
		return err
	}
	// Valida a configuração antes de agendar
	if _, err := app.dashboardUseCase.ResolveArgs(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spec, _ := cmd.Flags().GetString("cron")
	sched := scheduler.NewScheduler(ctx, app.dashboardUseCase, app.console, *args)
	if err := sched.Register(spec); err != nil {
		return err
	}

	if runNow, _ := cmd.Flags().GetBool("run-now"); runNow {
		if err := sched.RunNow(); err != nil {
			return err
		}
	}

	sched.Start()
	<-ctx.Done()
	sched.Stop()
	return nil
}

func (app *CLIApp) runImport(cmd *cobra.Command, positional []string) error {
	args, err := app.resolve(cmd)
	if err != nil {
		return err
	}
	args.ImportFile = positional[0]

	_, err = app.dashboardUseCase.RunImport(cmd.Context(), args)
	return err
}

// handleNoDataset transforma a ausência de dados num aviso em vez de erro.
func (app *CLIApp) handleNoDataset(err error) error {
	if errors.Is(err, types.ErrNoDataset) {
		app.console.LogWarning("%s", err)
		return nil
	}
	return err
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}
