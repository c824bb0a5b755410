package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bonk1990/gydytojas/internal/domain/entity"
	domainRepo "github.com/bonk1990/gydytojas/internal/domain/repository"
	"github.com/bonk1990/gydytojas/internal/infrastructure/portal"

	"github.com/PuerkitoBio/goquery"
)

const (
	processPath    = "/MyVisits/Process/Process"
	confirmPath    = "/MyVisits/Process/Confirm"
	reschedulePath = "/MyVisits/Process/Reschedule"

	// Element ids the portal uses to signal booking process state.
	conflictElementID   = "RescheduleVisitAppElementId"
	confirmedElementID  = "confirm-visit"
	rescheduleSuccessID = "rescheduleSuccess"
	rescheduleFailedID  = "rescheduleFailed"
)

var ErrMalformedBookingPage = errors.New("booking page did not have the expected shape")

type bookingRepository struct {
	session *portal.Session
}

func NewBookingRepository(session *portal.Session) domainRepo.BookingRepository {
	return &bookingRepository{session: session}
}

func (r *bookingRepository) OpenProcess(ctx context.Context, visitID string) (*entity.BookingPage, error) {
	doc, err := r.session.GetDocument(ctx, processPath, url.Values{"id": {visitID}})
	if err != nil {
		return nil, fmt.Errorf("open booking process: %w", err)
	}

	if doc.Find("div#" + conflictElementID).Length() == 0 {
		return &entity.BookingPage{}, nil
	}

	script, ok := findRescheduleScript(doc)
	if !ok {
		return nil, ErrNoSchedulePayload
	}
	slotID, collisions, err := parseRescheduleScript(script)
	if err != nil {
		return nil, err
	}
	return &entity.BookingPage{
		RescheduleRequired: true,
		SlotID:             slotID,
		Collisions:         collisions,
	}, nil
}

func (r *bookingRepository) Confirm(ctx context.Context, visitID string) (bool, error) {
	doc, err := r.session.GetDocument(ctx, confirmPath, url.Values{"id": {visitID}})
	if err != nil {
		return false, fmt.Errorf("open confirmation form: %w", err)
	}

	form := doc.Find(`form[action="` + confirmPath + `"]`).First()
	if form.Length() == 0 {
		return false, fmt.Errorf("%w: no confirmation form", ErrMalformedBookingPage)
	}

	// Resubmit the form fields verbatim.
	doc, err = r.session.PostForm(ctx, confirmPath, portal.ExtractFormFields(form))
	if err != nil {
		return false, fmt.Errorf("submit confirmation form: %w", err)
	}
	return doc.Find("div#"+confirmedElementID).Length() > 0, nil
}

func (r *bookingRepository) Reschedule(ctx context.Context, slotID, oldAppointmentID string) (*entity.RescheduleOutcome, error) {
	query := url.Values{
		"slotId":           {slotID},
		"oldAppointmentId": {oldAppointmentID},
	}
	doc, err := r.session.GetDocument(ctx, reschedulePath, query)
	if err != nil {
		return nil, fmt.Errorf("reschedule: %w", err)
	}
	return &entity.RescheduleOutcome{
		Success: markerVisible(doc, rescheduleSuccessID),
		Failure: markerVisible(doc, rescheduleFailedID),
	}, nil
}

// markerVisible reports whether the marker div exists and is not hidden.
// The portal renders both result markers and hides the inapplicable one.
func markerVisible(doc *goquery.Document, id string) bool {
	marker := doc.Find("div#" + id)
	if marker.Length() == 0 {
		return false
	}
	_, hidden := marker.Attr("hidden")
	return !hidden
}

func findRescheduleScript(doc *goquery.Document) (string, bool) {
	var script string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), rescheduleScriptMarker) {
			script = s.Text()
			return false
		}
		return true
	})
	return script, script != ""
}
