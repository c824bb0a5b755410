package usecase

import (
	"testing"
	"time"

	"github.com/bonk1990/gydytojas/internal/domain/entity"
	"github.com/bonk1990/gydytojas/pkg/timeparse"
)

func TestNarrowVisits(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 2, 28, 23, 59, 59, 0, time.Local)

	inside := visitAt(time.Date(2024, 2, 10, 10, 0, 0, 0, time.Local), "Dr. X")
	before := visitAt(time.Date(2024, 1, 31, 10, 0, 0, 0, time.Local), "Dr. X")
	after := visitAt(time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local), "Dr. X")
	onStart := visitAt(start, "Dr. Y")

	kept := NarrowVisits([]entity.Visit{inside, before, after, onStart}, start, end, nil)
	if len(kept) != 2 {
		t.Fatalf("kept %d visits, want 2", len(kept))
	}
	if kept[0] != inside || kept[1] != onStart {
		t.Errorf("kept = %+v", kept)
	}
}

func TestNarrowVisits_DailyWindow(t *testing.T) {
	window, err := timeparse.ParseTimeRange("8:00-12:00")
	if err != nil {
		t.Fatalf("ParseTimeRange: %v", err)
	}
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 2, 28, 23, 59, 59, 0, time.Local)

	morning := visitAt(time.Date(2024, 2, 10, 9, 0, 0, 0, time.Local), "Dr. X")
	evening := visitAt(time.Date(2024, 2, 10, 18, 0, 0, 0, time.Local), "Dr. X")

	kept := NarrowVisits([]entity.Visit{morning, evening}, start, end, window)
	if len(kept) != 1 || kept[0] != morning {
		t.Errorf("kept = %+v, want only the morning visit", kept)
	}
}

// Two bookable slots that differ only in visit id are the same visit to
// the operator.
func TestUniqueVisitKeys_CollapsesDuplicateSlots(t *testing.T) {
	date := time.Date(2024, 2, 10, 10, 0, 0, 0, time.Local)
	a := visitAt(date, "Dr. X")
	a.VisitID = "111"
	b := visitAt(date, "Dr. X")
	b.VisitID = "222"

	keys := UniqueVisitKeys([]entity.Visit{a, b})
	if len(keys) != 1 {
		t.Fatalf("got %d keys, want 1", len(keys))
	}
	if keys[0] != a.Key() {
		t.Errorf("key = %+v, want %+v", keys[0], a.Key())
	}
}

func TestUniqueVisitKeys_Sorted(t *testing.T) {
	later := visitAt(time.Date(2024, 2, 11, 10, 0, 0, 0, time.Local), "Dr. X")
	earlier := visitAt(time.Date(2024, 2, 10, 10, 0, 0, 0, time.Local), "Dr. X")

	keys := UniqueVisitKeys([]entity.Visit{later, earlier})
	if len(keys) != 2 {
		t.Fatalf("got %d keys, want 2", len(keys))
	}
	if !keys[0].Date.Before(keys[1].Date) {
		t.Errorf("keys not sorted by date: %+v", keys)
	}
}

func TestBestVisit(t *testing.T) {
	if _, ok := BestVisit(nil); ok {
		t.Error("BestVisit(nil) reported a candidate")
	}

	date := time.Date(2024, 2, 10, 10, 0, 0, 0, time.Local)
	early := visitAt(date, "Dr. X")
	late := visitAt(date.Add(time.Hour), "Dr. X")

	best, ok := BestVisit([]entity.Visit{late, early})
	if !ok || best != early {
		t.Errorf("BestVisit = %+v, want the earlier visit", best)
	}

	// Identical tuples fall back to the visit id.
	a := visitAt(date, "Dr. X")
	a.VisitID = "222"
	b := visitAt(date, "Dr. X")
	b.VisitID = "111"
	best, _ = BestVisit([]entity.Visit{a, b})
	if best.VisitID != "111" {
		t.Errorf("BestVisit tie-break picked id %q, want %q", best.VisitID, "111")
	}
}
