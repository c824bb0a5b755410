package repository

import (
	"context"

	"github.com/bonk1990/gydytojas/internal/domain/entity"
)

// BookingRepository drives the portal's booking process for a single visit.
type BookingRepository interface {
	// OpenProcess opens the booking process view for the visit and reports
	// whether committing it requires displacing an existing appointment.
	OpenProcess(ctx context.Context, visitID string) (*entity.BookingPage, error)

	// Confirm runs the confirmation form round-trip for a conflict-free
	// visit. It reports whether the portal acknowledged the booking.
	Confirm(ctx context.Context, visitID string) (bool, error)

	// Reschedule asks the portal to replace the given existing appointment
	// with the target slot and reports the raw result markers.
	Reschedule(ctx context.Context, slotID, oldAppointmentID string) (*entity.RescheduleOutcome, error)
}
