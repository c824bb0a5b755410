package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bonk1990/gydytojas/internal/usecase"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitSuccess},
		{"no visits", usecase.ErrNoVisitsFound, ExitNoVisitsFound},
		{"window exhausted", usecase.ErrWindowExhausted, ExitWindowExhausted},
		{"unresolved filter", &usecase.UnresolvedFilterError{Category: "services", Query: "zzz"}, ExitUnresolvedFilter},
		{"reschedule required", usecase.ErrRescheduleRequired, ExitRescheduleRequired},
		{"ambiguous reschedule", usecase.ErrAmbiguousReschedule, ExitAmbiguousReschedule},
		{"booking failed", usecase.ErrBookingFailed, ExitBookingFailed},
		{"wrapped booking failed", fmt.Errorf("autobook: %w", usecase.ErrBookingFailed), ExitBookingFailed},
		{"abort", context.Canceled, ExitAborted},
		{"anything else", errors.New("portal down"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
