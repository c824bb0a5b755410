package cli

import (
	"context"
	"errors"

	"github.com/bonk1990/gydytojas/internal/usecase"
)

// Exit codes for the terminal outcomes of a run.
const (
	ExitSuccess             = 0
	ExitNoVisitsFound       = 1
	ExitWindowExhausted     = 2
	ExitUnresolvedFilter    = 3
	ExitRescheduleRequired  = 4
	ExitAmbiguousReschedule = 5
	ExitBookingFailed       = 6
	ExitFailure             = 7
	ExitAborted             = 130
)

// ExitCode maps a run's terminal error to its process exit code.
func ExitCode(err error) int {
	var unresolved *usecase.UnresolvedFilterError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitAborted
	case errors.Is(err, usecase.ErrNoVisitsFound):
		return ExitNoVisitsFound
	case errors.Is(err, usecase.ErrWindowExhausted):
		return ExitWindowExhausted
	case errors.As(err, &unresolved):
		return ExitUnresolvedFilter
	case errors.Is(err, usecase.ErrRescheduleRequired):
		return ExitRescheduleRequired
	case errors.Is(err, usecase.ErrAmbiguousReschedule):
		return ExitAmbiguousReschedule
	case errors.Is(err, usecase.ErrBookingFailed):
		return ExitBookingFailed
	default:
		return ExitFailure
	}
}
