package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Month      int
	Basis      string
	Search     string
	Action     string
	Source     string
	ReportName string
	ReportType []string
	Dir        string
	Storage    StorageConfig
	Extraction ExtractionConfig
	ImportFile string
	ShowBars   bool
}
