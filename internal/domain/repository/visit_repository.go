package repository

import (
	"context"
	"time"

	"github.com/bonk1990/gydytojas/internal/domain/entity"
)

// VisitRepository exposes the portal's free slot search. One call returns
// one page of visits dated at or after since.
type VisitRepository interface {
	SearchSlots(ctx context.Context, filters *entity.SearchFilterSet, since time.Time) ([]entity.Visit, error)
}
