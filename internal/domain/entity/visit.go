package entity

import (
	"strings"
	"time"
)

// Visit is a single bookable appointment slot reported by the portal.
// Produced by the search layer, read-only afterwards.
type Visit struct {
	Date           time.Time
	Specialization string
	Doctor         string
	Clinic         string
	VisitID        string
}

// VisitKey is the identity projection used for deduplication and display.
// Two slots with the same date, specialization, doctor and clinic are the
// same visible visit even when the portal issues different ids for them.
type VisitKey struct {
	Date           time.Time
	Specialization string
	Doctor         string
	Clinic         string
}

func (v Visit) Key() VisitKey {
	return VisitKey{
		Date:           v.Date,
		Specialization: v.Specialization,
		Doctor:         v.Doctor,
		Clinic:         v.Clinic,
	}
}

// Compare orders visits by date, specialization, doctor, clinic and finally
// visit id. The id participates only as a tie-break of the full record.
func (v Visit) Compare(other Visit) int {
	if c := v.Key().Compare(other.Key()); c != 0 {
		return c
	}
	return strings.Compare(v.VisitID, other.VisitID)
}

// Compare orders keys by date, specialization, doctor and clinic.
func (k VisitKey) Compare(other VisitKey) int {
	if c := k.Date.Compare(other.Date); c != 0 {
		return c
	}
	if c := strings.Compare(k.Specialization, other.Specialization); c != 0 {
		return c
	}
	if c := strings.Compare(k.Doctor, other.Doctor); c != 0 {
		return c
	}
	return strings.Compare(k.Clinic, other.Clinic)
}
