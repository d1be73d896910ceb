package audit

import (
	"sort"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
)

// UnknownSourcePrefix is prepended to codes missing from SourceLabels so every
// unknown code keeps its own stable label.
const UnknownSourcePrefix = "Fonte "

// sourceLabels maps funding-source codes (vínculos) to display labels.
// Labels must stay unique: grouping relies on it.
var sourceLabels = map[string]string{
	"00000": "Recursos Livres",
	"00101": "70% FUNDEB",
	"00102": "30% FUNDEB",
	"00103": "5% MDE",
	"00104": "25% MDE / Recursos Próprios",
	"00107": "Salário Educação",
	"10146": "PNAE (Merenda)",
	"10147": "Apoio ao Transporte (PNATE)",
	"10231": "VAAR (FUNDEB)",
}

// ResolveSource returns the label of a funding-source code, or
// UnknownSourcePrefix followed by the raw code.
func ResolveSource(code string) string {
	if label, ok := sourceLabels[code]; ok {
		return label
	}
	return UnknownSourcePrefix + code
}

// KnownSources returns a copy of the static code→label table.
func KnownSources() map[string]string {
	out := make(map[string]string, len(sourceLabels))
	for k, v := range sourceLabels {
		out[k] = v
	}
	return out
}

// SourceLabels returns the sorted, deduplicated labels present in lines.
func SourceLabels(lines []entity.DerivedLedgerLine) []string {
	seen := make(map[string]struct{})
	labels := []string{}
	for _, l := range lines {
		label := ResolveSource(l.SourceCode)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
