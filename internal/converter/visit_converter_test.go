package converter

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bonk1990/gydytojas/internal/delivery/dto"
	"github.com/bonk1990/gydytojas/internal/domain/entity"
)

func TestSlotToVisit(t *testing.T) {
	item := dto.SlotItem{
		ID:                 json.Number("12345"),
		AppointmentDate:    "2024-01-05T10:30:00",
		SpecializationName: "Cardiology",
		DoctorName:         "Dr. X",
		ClinicName:         "Clinic A",
	}

	visit, err := SlotToVisit(item)
	if err != nil {
		t.Fatalf("SlotToVisit: %v", err)
	}

	want := entity.Visit{
		Date:           time.Date(2024, 1, 5, 10, 30, 0, 0, time.Local),
		Specialization: "Cardiology",
		Doctor:         "Dr. X",
		Clinic:         "Clinic A",
		VisitID:        "12345",
	}
	if visit != want {
		t.Errorf("SlotToVisit = %+v, want %+v", visit, want)
	}
}

func TestSlotToVisit_BadDate(t *testing.T) {
	item := dto.SlotItem{ID: json.Number("1"), AppointmentDate: "whenever"}
	if _, err := SlotToVisit(item); !errors.Is(err, ErrBadAppointmentDate) {
		t.Errorf("SlotToVisit: got %v, want ErrBadAppointmentDate", err)
	}
}

func TestParseDotNetDate(t *testing.T) {
	got, err := ParseDotNetDate("/Date(1576485900000)/")
	if err != nil {
		t.Fatalf("ParseDotNetDate: %v", err)
	}
	if got.UnixMilli() != 1576485900000 {
		t.Errorf("ParseDotNetDate = %v (%d ms), want 1576485900000 ms", got, got.UnixMilli())
	}

	if _, err := ParseDotNetDate("/Date()/"); !errors.Is(err, ErrBadAppointmentDate) {
		t.Errorf("ParseDotNetDate with no digits: got %v, want ErrBadAppointmentDate", err)
	}
}

func TestFilterSetToPayload(t *testing.T) {
	filters := &entity.SearchFilterSet{
		RegionIDs:     []string{"204"},
		ServiceTypeID: "1",
		ServiceIDs:    []string{"9"},
	}
	since := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)

	payload := FilterSetToPayload(filters, since)

	if payload.SearchSince != "2024-01-02T00:00:00" {
		t.Errorf("SearchSince = %q", payload.SearchSince)
	}

	// The portal rejects nulls, every list must marshal as an array.
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	for _, key := range []string{"regionIds", "serviceIds", "clinicIds", "doctorIds", "doctorLanguagesIds"} {
		if _, ok := decoded[key].([]any); !ok {
			t.Errorf("payload field %s = %v, want a JSON array", key, decoded[key])
		}
	}
}
