package usecase

import (
	"fmt"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/audit"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

// DefaultEnvFiles são lidos quando existem, antes das variáveis de ambiente.
var DefaultEnvFiles = []string{".env"}

// ResolveArgs merges the explicit CLI flags with the environment, the config
// file and the defaults, in that order of precedence. Only flags the user set
// should be filled in args.
func (uc *DashboardUseCase) ResolveArgs(args *types.CLIArgs) (*types.CLIArgs, error) {
	fileCfg := types.Config{}
	if args.ConfigFile != "" {
		loaded, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		fileCfg = *loaded
	}

	// Ambiente sobrescreve o arquivo
	if err := uc.configRepo.LoadEnvironment(&fileCfg, DefaultEnvFiles...); err != nil {
		return nil, err
	}

	cfg := types.Config{
		Month:      args.Month,
		Basis:      args.Basis,
		ReportName: args.ReportName,
		ReportType: args.ReportType,
		Dir:        args.Dir,
		Storage:    args.Storage,
		Extraction: args.Extraction,
	}
	cfg.Merge(fileCfg)

	// Exportação só acontece quando nome ou tipo foram pedidos em algum lugar.
	exportRequested := cfg.ReportName != "" || len(cfg.ReportType) > 0

	cfg.Merge(types.DefaultConfig())
	if cfg.Month == 0 {
		cfg.Month = int(uc.now().Month())
	}
	if !exportRequested {
		cfg.ReportType = nil
	}

	if cfg.Month < 1 || cfg.Month > audit.MonthsInYear {
		return nil, fmt.Errorf("%w (got %d)", types.ErrInvalidMonth, cfg.Month)
	}
	basis, err := audit.ParseProjectionBasis(cfg.Basis)
	if err != nil {
		return nil, err
	}

	resolved := *args
	resolved.Month = cfg.Month
	resolved.Basis = string(basis)
	resolved.ReportName = cfg.ReportName
	resolved.ReportType = cfg.ReportType
	resolved.Dir = cfg.Dir
	resolved.Storage = cfg.Storage
	resolved.Extraction = cfg.Extraction
	return &resolved, nil
}
