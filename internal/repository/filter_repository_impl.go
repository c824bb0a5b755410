package repository

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bonk1990/gydytojas/internal/converter"
	"github.com/bonk1990/gydytojas/internal/delivery/dto"
	"github.com/bonk1990/gydytojas/internal/domain/entity"
	domainRepo "github.com/bonk1990/gydytojas/internal/domain/repository"
	"github.com/bonk1990/gydytojas/internal/infrastructure/portal"
)

const (
	myVisitsPath       = "/MyVisits"
	initialFiltersPath = "/api/MyVisits/SearchFreeSlotsToBook/GetInitialFiltersData"
	filtersDataPath    = "/api/MyVisits/SearchFreeSlotsToBook/GetFiltersData"
)

type filterRepository struct {
	session *portal.Session
}

func NewFilterRepository(session *portal.Session) domainRepo.FilterRepository {
	return &filterRepository{session: session}
}

func (r *filterRepository) GetInitialFilters(ctx context.Context) (*entity.FilterCatalog, error) {
	// Open the visit search page first so the session looks like a browser.
	if _, err := r.session.GetDocument(ctx, myVisitsPath, nil); err != nil {
		return nil, fmt.Errorf("open visit search page: %w", err)
	}

	var resp dto.FiltersResponse
	if err := r.session.GetJSON(ctx, initialFiltersPath, nil, &resp); err != nil {
		return nil, fmt.Errorf("get initial filters: %w", err)
	}
	return converter.FiltersToCatalog(&resp), nil
}

func (r *filterRepository) GetFilteredData(ctx context.Context, partial *entity.SearchFilterSet) (*entity.FilterCatalog, error) {
	var resp dto.FiltersResponse
	if err := r.session.GetJSON(ctx, filtersDataPath, filterQuery(partial), &resp); err != nil {
		return nil, fmt.Errorf("get filtered data: %w", err)
	}
	return converter.FiltersToCatalog(&resp), nil
}

// filterQuery serializes the ids resolved so far; the portal scopes the
// returned lookup lists by them.
func filterQuery(partial *entity.SearchFilterSet) url.Values {
	query := url.Values{}
	for _, id := range partial.RegionIDs {
		query.Add("regionIds", id)
	}
	if partial.ServiceTypeID != "" {
		query.Set("serviceTypeId", partial.ServiceTypeID)
	}
	for _, id := range partial.ServiceIDs {
		query.Add("serviceIds", id)
	}
	for _, id := range partial.ClinicIDs {
		query.Add("clinicIds", id)
	}
	for _, id := range partial.DoctorIDs {
		query.Add("doctorIds", id)
	}
	return query
}
