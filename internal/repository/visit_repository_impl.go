package repository

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bonk1990/gydytojas/internal/converter"
	"github.com/bonk1990/gydytojas/internal/delivery/dto"
	"github.com/bonk1990/gydytojas/internal/domain/entity"
	domainRepo "github.com/bonk1990/gydytojas/internal/domain/repository"
	"github.com/bonk1990/gydytojas/internal/infrastructure/portal"
)

const searchSlotsPath = "/api/MyVisits/SearchFreeSlotsToBook"

type visitRepository struct {
	session *portal.Session
}

func NewVisitRepository(session *portal.Session) domainRepo.VisitRepository {
	return &visitRepository{session: session}
}

func (r *visitRepository) SearchSlots(ctx context.Context, filters *entity.SearchFilterSet, since time.Time) ([]entity.Visit, error) {
	payload := converter.FilterSetToPayload(filters, since)
	query := url.Values{"language": {r.session.Language}}

	var resp dto.SlotSearchResponse
	if err := r.session.PostJSON(ctx, searchSlotsPath, query, payload, &resp); err != nil {
		return nil, fmt.Errorf("search slots: %w", err)
	}
	return converter.SlotsToVisits(resp.Items)
}
