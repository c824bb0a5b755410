package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/bonk1990/gydytojas/internal/domain/entity"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

var (
	// ErrWindowExhausted means the margin-adjusted start time has caught
	// up with the requested end: it is already too late to find anything.
	ErrWindowExhausted = errors.New("it's already too late")

	// ErrNoVisitsFound is the clean terminal outcome of a pass that found
	// nothing when no further retries were requested.
	ErrNoVisitsFound = errors.New("no visits found")
)

// HuntResult is the product of a successful search pass.
type HuntResult struct {
	// Unique holds the deduplicated display tuples in ascending order.
	Unique []entity.VisitKey
	// Best is the earliest visit under the full record order, the
	// candidate for autobooking.
	Best entity.Visit
}

type HuntUsecase interface {
	// Hunt runs full search passes until one finds visits or retries are
	// exhausted. Retries only apply to "found nothing yet"; every other
	// failure terminates the hunt.
	Hunt(ctx context.Context, criteria *entity.SearchCriteria, filterSets []*entity.SearchFilterSet) (*HuntResult, error)
}

type huntUsecase struct {
	log    *logrus.Logger
	search SearchVisitsUsecase
	now    func() time.Time
}

func NewHuntUsecase(log *logrus.Logger, search SearchVisitsUsecase) HuntUsecase {
	return &huntUsecase{
		log:    log,
		search: search,
		now:    time.Now,
	}
}

func (u *huntUsecase) Hunt(ctx context.Context, criteria *entity.SearchCriteria, filterSets []*entity.SearchFilterSet) (*HuntResult, error) {
	var result *HuntResult
	attempt := 0

	pass := func() error {
		attempt++

		// The effective window shrinks in real time: a visit closer than
		// the margin is not reachable anymore.
		start := u.now().Add(criteria.Margin)
		if criteria.Start.After(start) {
			start = criteria.Start
		}
		end := criteria.End
		if !start.Before(end) {
			return backoff.Permanent(ErrWindowExhausted)
		}

		var found []entity.Visit
		for _, filters := range filterSets {
			for visit, err := range u.search.Search(ctx, start, end, filters) {
				if err != nil {
					return backoff.Permanent(err)
				}
				found = append(found, visit)
			}
		}

		// Pages may carry visits outside the interesting range.
		found = NarrowVisits(found, start, end, criteria.DailyWindow)
		if len(found) == 0 {
			return ErrNoVisitsFound
		}

		unique := UniqueVisitKeys(found)
		best, _ := BestVisit(found)
		result = &HuntResult{Unique: unique, Best: best}
		return nil
	}

	notify := func(_ error, wait time.Duration) {
		u.log.Infof("No visits found on attempt %d, waiting %.1f seconds...", attempt, wait.Seconds())
	}

	policy := backoff.WithContext(u.retryPolicy(criteria), ctx)
	if err := backoff.RetryNotify(pass, policy, notify); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	u.log.Infof("Found %d visits.", len(result.Unique))
	return result, nil
}

// retryPolicy maps the criteria onto a backoff policy: no retries at all,
// a fixed interval, immediate retry, or a uniformly random interval up to
// the configured bound to avoid hammering the portal in lockstep.
func (u *huntUsecase) retryPolicy(criteria *entity.SearchCriteria) backoff.BackOff {
	switch {
	case !criteria.KeepGoing:
		return &backoff.StopBackOff{}
	case criteria.Interval < 0:
		return &randomBackOff{max: -criteria.Interval}
	default:
		return backoff.NewConstantBackOff(criteria.Interval)
	}
}

// randomBackOff waits a uniformly random time in [0, max] between passes.
type randomBackOff struct {
	max time.Duration
}

func (b *randomBackOff) NextBackOff() time.Duration {
	return rand.N(b.max + 1)
}

func (b *randomBackOff) Reset() {}
