package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/loa-audit-dashboard-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         _     ___    _         _             _ _ _   
        | |   / _ \  / \       / \  _   _  __| (_) |_ 
        | |  | | | |/ _ \     / _ \| | | |/ _' | | __|
        | |__| |_| / ___ \   / ___ \ |_| | (_| | | |_ 
        |_____\___/_/   \_\ /_/   \_\__,_|\__,_|_|\__|
        `
	indigo := color.New(color.FgBlue, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Println(indigo(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(cyan(fmt.Sprintf("Controle LOA 2026 - Auditoria Orçamentária (v%s)", formattedVersion)))
	if versionStr != "" && versionStr != version.Version {
		fmt.Println(cyan(fmt.Sprintf("build %s", versionStr)))
	}
}
