package entity

import "time"

// ConflictCandidate is an already-booked appointment that collides with the
// slot being committed. Its id is the appointment to cancel.
type ConflictCandidate struct {
	Date           time.Time
	Specialization string
	Doctor         string
	Clinic         string
	AppointmentID  string
}

// BookingPage is the classified booking process view for one visit.
// SlotID and Collisions are populated only when RescheduleRequired is set.
type BookingPage struct {
	RescheduleRequired bool
	SlotID             string
	Collisions         []ConflictCandidate
}

// RescheduleOutcome reports which result markers the portal's reschedule
// response carried. Both or neither being present is possible and is left
// for the booking state machine to classify.
type RescheduleOutcome struct {
	Success bool
	Failure bool
}
