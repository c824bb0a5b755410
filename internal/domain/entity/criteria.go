package entity

import (
	"time"

	"github.com/bonk1990/gydytojas/pkg/timeparse"
)

// Service type display texts the portal knows for visit searches.
const (
	ServiceTypeConsultation = "Konsultacja"
	ServiceTypeDiagnostic   = "Badanie diagnostyczne"
)

// SearchCriteria is the full, validated description of one hunting run as
// requested by the operator.
type SearchCriteria struct {
	Region          string
	ServiceType     string   `validate:"required"`
	Specializations []string `validate:"min=1,dive,required"`
	Doctors         []string
	Clinics         []string

	Start       time.Time
	End         time.Time
	Margin      time.Duration `validate:"gte=0"`
	DailyWindow *timeparse.TimeRange

	Autobook   bool
	Reschedule bool
	KeepGoing  bool
	// Interval between retry passes. Negative means a uniformly random
	// sleep up to its absolute value, zero retries immediately.
	Interval time.Duration
}
