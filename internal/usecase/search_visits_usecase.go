package usecase

import (
	"context"
	"iter"
	"time"

	"github.com/bonk1990/gydytojas/internal/domain/entity"
	"github.com/bonk1990/gydytojas/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type SearchVisitsUsecase interface {
	// Search lazily yields every visit the portal reports between start
	// and end for the filter set. The sequence is finite: it ends when the
	// portal returns an empty page or the cursor rolls past end.
	Search(ctx context.Context, start, end time.Time, filters *entity.SearchFilterSet) iter.Seq2[entity.Visit, error]
}

type searchVisitsUsecase struct {
	log       *logrus.Logger
	visitRepo repository.VisitRepository
	now       func() time.Time
}

func NewSearchVisitsUsecase(log *logrus.Logger, visitRepo repository.VisitRepository) SearchVisitsUsecase {
	return &searchVisitsUsecase{
		log:       log,
		visitRepo: visitRepo,
		now:       time.Now,
	}
}

func (u *searchVisitsUsecase) Search(ctx context.Context, start, end time.Time, filters *entity.SearchFilterSet) iter.Seq2[entity.Visit, error] {
	return func(yield func(entity.Visit, error) bool) {
		// The cursor never starts in the past and never moves backwards,
		// so the loop always terminates or exhausts the portal's horizon.
		since := start
		if now := u.now(); now.After(since) {
			since = now
		}

		for {
			page, err := u.visitRepo.SearchSlots(ctx, filters, since)
			if err != nil {
				yield(entity.Visit{}, err)
				return
			}
			if len(page) == 0 {
				// No more visits within the portal's horizon.
				return
			}
			u.log.Debugf("Got %d visits since %s", len(page), since.Format("2006-01-02 15:04"))

			maxDate := page[0].Date
			for _, visit := range page {
				if visit.Date.After(maxDate) {
					maxDate = visit.Date
				}
				if !yield(visit, nil) {
					return
				}
			}

			// Advance to the start of the day after the latest visit seen;
			// the portal returns a complete page per window, so the same
			// day is never requested twice.
			since = startOfNextDay(maxDate)
			if since.After(end) {
				return
			}
		}
	}
}

func startOfNextDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
}
