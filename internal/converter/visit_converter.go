package converter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bonk1990/gydytojas/internal/delivery/dto"
	"github.com/bonk1990/gydytojas/internal/domain/entity"
	"github.com/bonk1990/gydytojas/pkg/timeparse"
)

var ErrBadAppointmentDate = errors.New("unparseable appointment date")

// SlotToVisit converts one search result item to a Visit entity.
func SlotToVisit(item dto.SlotItem) (entity.Visit, error) {
	date, err := timeparse.ParseDateTime(item.AppointmentDate, false)
	if err != nil {
		return entity.Visit{}, fmt.Errorf("%w: %q", ErrBadAppointmentDate, item.AppointmentDate)
	}
	return entity.Visit{
		Date:           date,
		Specialization: item.SpecializationName,
		Doctor:         item.DoctorName,
		Clinic:         item.ClinicName,
		VisitID:        item.ID.String(),
	}, nil
}

// SlotsToVisits converts a full search result page.
func SlotsToVisits(items []dto.SlotItem) ([]entity.Visit, error) {
	visits := make([]entity.Visit, 0, len(items))
	for _, item := range items {
		visit, err := SlotToVisit(item)
		if err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, nil
}

// AppointmentToConflict converts one colliding appointment from the
// reschedule script payload.
func AppointmentToConflict(appt dto.RescheduleAppointment) (entity.ConflictCandidate, error) {
	date, err := ParseDotNetDate(appt.AppointmentDate)
	if err != nil {
		return entity.ConflictCandidate{}, err
	}
	return entity.ConflictCandidate{
		Date:           date,
		Specialization: appt.SpecializationName,
		Doctor:         appt.DoctorName,
		Clinic:         appt.ClinicName,
		AppointmentID:  appt.AppointmentID.String(),
	}, nil
}

// ParseDotNetDate parses timestamps like "/Date(1576485900000)/" where the
// number is Unix time in milliseconds.
func ParseDotNetDate(value string) (time.Time, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
	ms, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadAppointmentDate, value)
	}
	return time.UnixMilli(ms), nil
}

// FiltersToCatalog converts a filters response to the domain catalog.
func FiltersToCatalog(resp *dto.FiltersResponse) *entity.FilterCatalog {
	return &entity.FilterCatalog{
		Regions:        ItemsToOptions(resp.Regions),
		ServiceTypes:   ItemsToOptions(resp.ServiceTypes),
		Services:       ItemsToOptions(resp.Services),
		Clinics:        ItemsToOptions(resp.Clinics),
		Doctors:        ItemsToOptions(resp.Doctors),
		HomeLocationID: resp.HomeLocationID.String(),
	}
}

func ItemsToOptions(items []dto.FilterItem) []entity.FilterOption {
	options := make([]entity.FilterOption, len(items))
	for i, item := range items {
		options[i] = entity.FilterOption{ID: item.ID.String(), Text: item.Text}
	}
	return options
}

// FilterSetToPayload builds the slot search request body for a filter set
// and cursor position.
func FilterSetToPayload(filters *entity.SearchFilterSet, since time.Time) *dto.SearchPayload {
	return &dto.SearchPayload{
		RegionIDs:          toNumbers(filters.RegionIDs),
		ServiceTypeID:      filters.ServiceTypeID,
		ServiceIDs:         orEmpty(filters.ServiceIDs),
		ClinicIDs:          toNumbers(filters.ClinicIDs),
		DoctorLanguagesIDs: []string{},
		DoctorIDs:          orEmpty(filters.DoctorIDs),
		SearchSince:        since.Format("2006-01-02T15:04:05"),
	}
}

func toNumbers(ids []string) []json.Number {
	numbers := make([]json.Number, len(ids))
	for i, id := range ids {
		numbers[i] = json.Number(id)
	}
	return numbers
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
