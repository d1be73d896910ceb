package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigMerge_KeepsSetValues(t *testing.T) {
	cfg := Config{
		Month:   3,
		Basis:   "thisMonth",
		Storage: StorageConfig{Backend: "sqlite"},
	}
	cfg.Merge(DefaultConfig())

	require.Equal(t, 3, cfg.Month)
	require.Equal(t, "thisMonth", cfg.Basis)
	require.Equal(t, "sqlite", cfg.Storage.Backend)
	require.Equal(t, DefaultStorageKey, cfg.Storage.Key)
	require.Equal(t, []string{"csv"}, cfg.ReportType)
	require.Equal(t, DefaultExtractionModel, cfg.Extraction.Model)
	require.Equal(t, 32000, cfg.Extraction.ThinkingBudget)
}

func TestConfigMerge_EmptyFallbackIsNoop(t *testing.T) {
	cfg := DefaultConfig()
	before := cfg
	cfg.Merge(Config{})
	require.Equal(t, before, cfg)
}
