package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bonk1990/gydytojas/internal/domain/entity"
	"github.com/bonk1990/gydytojas/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	// ErrRescheduleRequired means committing the slot would displace an
	// existing appointment and the operator did not allow that.
	ErrRescheduleRequired = errors.New("booking requires rescheduling an existing appointment")

	// ErrAmbiguousReschedule means the reschedule response carried both or
	// neither of the result markers and could not be classified.
	ErrAmbiguousReschedule = errors.New("unable to determine if reschedule was successful")

	ErrBookingFailed = errors.New("booking failed")
)

// ConflictPresenter shows the operator the colliding appointments found
// during a booking attempt.
type ConflictPresenter interface {
	ShowCollisions(collisions []entity.ConflictCandidate)
}

type AutobookUsecase interface {
	// Book commits the visit. When the portal reports a conflict and
	// allowReschedule is set, the earliest colliding appointment is
	// canceled in the same request that confirms the new slot.
	Book(ctx context.Context, visit entity.Visit, allowReschedule bool) error
}

type autobookUsecase struct {
	log         *logrus.Logger
	bookingRepo repository.BookingRepository
	presenter   ConflictPresenter
}

func NewAutobookUsecase(log *logrus.Logger, bookingRepo repository.BookingRepository, presenter ConflictPresenter) AutobookUsecase {
	return &autobookUsecase{
		log:         log,
		bookingRepo: bookingRepo,
		presenter:   presenter,
	}
}

func (u *autobookUsecase) Book(ctx context.Context, visit entity.Visit, allowReschedule bool) error {
	page, err := u.bookingRepo.OpenProcess(ctx, visit.VisitID)
	if err != nil {
		return err
	}

	if !page.RescheduleRequired {
		u.log.Info("Reschedule not needed.")
		confirmed, err := u.bookingRepo.Confirm(ctx, visit.VisitID)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("%w: confirmation was not acknowledged", ErrBookingFailed)
		}
		return nil
	}

	u.log.Info("Reschedule needed.")
	if !allowReschedule {
		return ErrRescheduleRequired
	}
	if len(page.Collisions) == 0 {
		return fmt.Errorf("%w: conflict reported without colliding appointments", ErrBookingFailed)
	}

	collisions := slices.Clone(page.Collisions)
	slices.SortFunc(collisions, func(a, b entity.ConflictCandidate) int {
		return a.Date.Compare(b.Date)
	})

	u.log.Infof("Found %d colliding visits:", len(collisions))
	if u.presenter != nil {
		u.presenter.ShowCollisions(collisions)
	}

	u.log.Info("Canceling first colliding visit...")
	outcome, err := u.bookingRepo.Reschedule(ctx, page.SlotID, collisions[0].AppointmentID)
	if err != nil {
		return err
	}

	switch {
	case outcome.Success && !outcome.Failure:
		return nil
	case outcome.Failure && !outcome.Success:
		return fmt.Errorf("%w: portal rejected the reschedule", ErrBookingFailed)
	default:
		return ErrAmbiguousReschedule
	}
}
