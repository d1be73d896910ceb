package repository

import (
	"context"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
)

// LedgerRepository persists the imported dataset. Save replaces the stored set
// wholesale; there is no merge or append. A corrupt stored payload is removed
// and Load returns an empty dataset together with types.ErrDatasetDiscarded.
type LedgerRepository interface {
	Load(ctx context.Context) ([]entity.LedgerLine, error)
	Save(ctx context.Context, batchID string, lines []entity.LedgerLine) error
	Clear(ctx context.Context) error
	// Location describes where the dataset lives, for user-facing messages.
	Location() string
}
