package extraction

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/repository"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

// Router sends .json files to the JSON reader and every other document to
// Gemini. The Gemini client is only created when a document needs it, so
// offline imports work without an API key.
type Router struct {
	cfg  types.ExtractionConfig
	json repository.ExtractionRepository

	once      sync.Once
	document  repository.ExtractionRepository
	initErr   error
	newGemini func(ctx context.Context, cfg types.ExtractionConfig) (repository.ExtractionRepository, error)
}

// NewExtractionRepository builds the router used by the import command.
func NewExtractionRepository(cfg types.ExtractionConfig) repository.ExtractionRepository {
	return &Router{
		cfg:  cfg,
		json: NewJSONFileRepository(),
		newGemini: func(ctx context.Context, cfg types.ExtractionConfig) (repository.ExtractionRepository, error) {
			return NewGeminiRepository(ctx, cfg)
		},
	}
}

func (r *Router) Extract(ctx context.Context, filePath string) entity.ExtractionResult {
	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		return r.json.Extract(ctx, filePath)
	}

	r.once.Do(func() {
		r.document, r.initErr = r.newGemini(ctx, r.cfg)
	})
	if r.initErr != nil {
		return entity.ExtractionFailed(r.initErr.Error())
	}
	return r.document.Extract(ctx, filePath)
}
