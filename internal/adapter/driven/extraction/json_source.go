package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
)

// JSONFileRepository reads lines that were already extracted, such as a JSON
// export of the dashboard or a saved model answer.
type JSONFileRepository struct{}

func NewJSONFileRepository() *JSONFileRepository {
	return &JSONFileRepository{}
}

func (r *JSONFileRepository) Extract(_ context.Context, filePath string) entity.ExtractionResult {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return entity.ExtractionFailed(fmt.Sprintf("error reading %s: %v", filePath, err))
	}
	return entity.ParseExtraction(reportLinesOrRaw(data))
}

// reportLinesOrRaw devolve o array "lines" quando o arquivo é um relatório
// exportado em JSON; caso contrário devolve o conteúdo intacto.
func reportLinesOrRaw(data []byte) []byte {
	var report struct {
		Lines json.RawMessage `json:"lines"`
	}
	if err := json.Unmarshal(data, &report); err != nil || len(report.Lines) == 0 {
		return data
	}
	return report.Lines
}
