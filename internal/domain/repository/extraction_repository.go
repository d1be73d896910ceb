package repository

import (
	"context"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
)

// ExtractionRepository turns a statement document into budget lines.
type ExtractionRepository interface {
	Extract(ctx context.Context, filePath string) entity.ExtractionResult
}
