package audit

import (
	"testing"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

func TestResolveSource_KnownCodes(t *testing.T) {
	require.Equal(t, "70% FUNDEB", ResolveSource("00101"))
	require.Equal(t, "PNAE (Merenda)", ResolveSource("10146"))
	require.Equal(t, "Recursos Livres", ResolveSource("00000"))
}

func TestResolveSource_UnknownCodesStayDistinct(t *testing.T) {
	a := ResolveSource("99999")
	b := ResolveSource("88888")
	require.Equal(t, "Fonte 99999", a)
	require.NotEqual(t, a, b)
	require.Equal(t, a, ResolveSource("99999"))
	require.Equal(t, "Fonte ", ResolveSource(""))

	for _, label := range KnownSources() {
		require.NotEqual(t, label, a)
	}
}

func TestKnownSources_IsInjective(t *testing.T) {
	table := KnownSources()
	require.Len(t, table, 9)

	seen := make(map[string]string)
	for code, label := range table {
		prev, dup := seen[label]
		require.False(t, dup, "codes %s and %s share label %q", prev, code, label)
		seen[label] = code
	}

	// a cópia não altera a tabela interna
	table["00101"] = "changed"
	require.Equal(t, "70% FUNDEB", ResolveSource("00101"))
}

func TestSourceLabels_SortedAndDeduplicated(t *testing.T) {
	lines := []entity.DerivedLedgerLine{
		{LedgerLine: entity.LedgerLine{SourceCode: "10146"}},
		{LedgerLine: entity.LedgerLine{SourceCode: "00101"}},
		{LedgerLine: entity.LedgerLine{SourceCode: "10146"}},
		{LedgerLine: entity.LedgerLine{SourceCode: "55555"}},
	}
	require.Equal(t, []string{"70% FUNDEB", "Fonte 55555", "PNAE (Merenda)"}, SourceLabels(lines))
	require.Empty(t, SourceLabels(nil))
}
