package repository

import (
	"context"

	"github.com/bonk1990/gydytojas/internal/domain/entity"
)

// FilterRepository exposes the portal's search filter lookup data.
//
// GetFilteredData returns lookup lists scoped by the ids already present in
// the partial filter set, so callers must resolve categories in order.
type FilterRepository interface {
	GetInitialFilters(ctx context.Context) (*entity.FilterCatalog, error)
	GetFilteredData(ctx context.Context, partial *entity.SearchFilterSet) (*entity.FilterCatalog, error)
}
