package usecase

import (
	"slices"
	"time"

	"github.com/bonk1990/gydytojas/internal/domain/entity"
	"github.com/bonk1990/gydytojas/pkg/timeparse"
)

// Pure transformations narrowing the raw candidate stream for display and
// autobooking.

// NarrowVisits keeps visits inside the inclusive [start, end] range and,
// when a daily window is given, inside that time of day.
func NarrowVisits(visits []entity.Visit, start, end time.Time, window *timeparse.TimeRange) []entity.Visit {
	kept := make([]entity.Visit, 0, len(visits))
	for _, visit := range visits {
		if visit.Date.Before(start) || visit.Date.After(end) {
			continue
		}
		if window != nil && !window.Covers(visit.Date) {
			continue
		}
		kept = append(kept, visit)
	}
	return kept
}

// UniqueVisitKeys deduplicates visits by their identity tuple and returns
// the keys in ascending order for display.
func UniqueVisitKeys(visits []entity.Visit) []entity.VisitKey {
	seen := make(map[entity.VisitKey]struct{}, len(visits))
	keys := make([]entity.VisitKey, 0, len(visits))
	for _, visit := range visits {
		key := visit.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	slices.SortFunc(keys, entity.VisitKey.Compare)
	return keys
}

// BestVisit picks the candidate to autobook: the earliest visit under the
// full record order, visit id included as the final tie-break.
func BestVisit(visits []entity.Visit) (entity.Visit, bool) {
	if len(visits) == 0 {
		return entity.Visit{}, false
	}
	best := visits[0]
	for _, visit := range visits[1:] {
		if visit.Compare(best) < 0 {
			best = visit
		}
	}
	return best, true
}
