package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Month      int              `json:"month" yaml:"month" toml:"month"`
	Basis      string           `json:"basis" yaml:"basis" toml:"basis"`
	ReportName string           `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string         `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string           `json:"dir" yaml:"dir" toml:"dir"`
	Storage    StorageConfig    `json:"storage" yaml:"storage" toml:"storage"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" toml:"extraction"`
}

// StorageConfig selects where the imported dataset is persisted.
type StorageConfig struct {
	Backend   string `json:"backend" yaml:"backend" toml:"backend"` // file, sqlite, s3, memory
	Path      string `json:"path" yaml:"path" toml:"path"`
	Key       string `json:"key" yaml:"key" toml:"key"`
	S3Bucket  string `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Region  string `json:"s3_region" yaml:"s3_region" toml:"s3_region"`
	S3Profile string `json:"s3_profile" yaml:"s3_profile" toml:"s3_profile"`
}

// ExtractionConfig configures the LLM service that reads statement PDFs.
type ExtractionConfig struct {
	APIKey         string `json:"api_key" yaml:"api_key" toml:"api_key"`
	Model          string `json:"model" yaml:"model" toml:"model"`
	ThinkingBudget int    `json:"thinking_budget" yaml:"thinking_budget" toml:"thinking_budget"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

const (
	// DefaultStorageKey is the key under which the dataset is persisted.
	DefaultStorageKey = "controle_loa_2026_data_v2"
	// DefaultExtractionModel is the model asked to read statement PDFs.
	DefaultExtractionModel = "gemini-3-pro-preview"
)

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Basis:      "average",
		ReportName: "auditoria_loa_2026",
		ReportType: []string{"csv"},
		Storage: StorageConfig{
			Backend: "file",
			Key:     DefaultStorageKey,
		},
		Extraction: ExtractionConfig{
			Model:          DefaultExtractionModel,
			ThinkingBudget: 32000,
			TimeoutSeconds: 300,
		},
	}
}

// Merge fills every empty field of c with the value from fallback.
func (c *Config) Merge(fallback Config) {
	if c.Month == 0 {
		c.Month = fallback.Month
	}
	if c.Basis == "" {
		c.Basis = fallback.Basis
	}
	if c.ReportName == "" {
		c.ReportName = fallback.ReportName
	}
	if len(c.ReportType) == 0 {
		c.ReportType = fallback.ReportType
	}
	if c.Dir == "" {
		c.Dir = fallback.Dir
	}
	mergeString(&c.Storage.Backend, fallback.Storage.Backend)
	mergeString(&c.Storage.Path, fallback.Storage.Path)
	mergeString(&c.Storage.Key, fallback.Storage.Key)
	mergeString(&c.Storage.S3Bucket, fallback.Storage.S3Bucket)
	mergeString(&c.Storage.S3Region, fallback.Storage.S3Region)
	mergeString(&c.Storage.S3Profile, fallback.Storage.S3Profile)
	mergeString(&c.Extraction.APIKey, fallback.Extraction.APIKey)
	mergeString(&c.Extraction.Model, fallback.Extraction.Model)
	if c.Extraction.ThinkingBudget == 0 {
		c.Extraction.ThinkingBudget = fallback.Extraction.ThinkingBudget
	}
	if c.Extraction.TimeoutSeconds == 0 {
		c.Extraction.TimeoutSeconds = fallback.Extraction.TimeoutSeconds
	}
}

func mergeString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}
