package main

import (
	"fmt"
	"os"

	"github.com/diillson/loa-audit-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/loa-audit-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/loa-audit-dashboard-go/internal/adapter/driven/extraction"
	"github.com/diillson/loa-audit-dashboard-go/internal/adapter/driven/storage"
	"github.com/diillson/loa-audit-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/loa-audit-dashboard-go/internal/application/usecase"
	"github.com/diillson/loa-audit-dashboard-go/pkg/console"
	"github.com/diillson/loa-audit-dashboard-go/pkg/version"
)

func main() {
	consoleImpl := console.NewConsole()

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, consoleImpl)

	// Inicializa os repositórios; storage e extração dependem da configuração
	// resolvida e são abertos pelo caso de uso.
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()

	// Inicializa o caso de uso
	dashboardUseCase := usecase.NewDashboardUseCase(
		storage.NewLedgerRepository,
		extraction.NewExtractionRepository,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetDashboardUseCase(dashboardUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
