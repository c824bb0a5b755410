package dto

import "encoding/json"

// Wire shapes of the portal's slot search and booking endpoints. Numeric
// and string ids are both accepted by keeping them as json.Number where the
// portal is inconsistent.

type FilterItem struct {
	ID   json.Number `json:"id"`
	Text string      `json:"text"`
}

// FiltersResponse is returned by both GetInitialFiltersData and the scoped
// GetFiltersData calls; the latter only fill the category lists relevant to
// the ids already selected.
type FiltersResponse struct {
	Regions        []FilterItem `json:"regions"`
	ServiceTypes   []FilterItem `json:"serviceTypes"`
	Services       []FilterItem `json:"services"`
	Clinics        []FilterItem `json:"clinics"`
	Doctors        []FilterItem `json:"doctors"`
	HomeLocationID json.Number  `json:"homeLocationId"`
}

// SearchPayload is the slot search request body. Region and clinic ids are
// posted as numbers while service and doctor ids must be strings.
type SearchPayload struct {
	RegionIDs          []json.Number `json:"regionIds"`
	ServiceTypeID      string        `json:"serviceTypeId"`
	ServiceIDs         []string      `json:"serviceIds"`
	ClinicIDs          []json.Number `json:"clinicIds"`
	DoctorLanguagesIDs []string      `json:"doctorLanguagesIds"`
	DoctorIDs          []string      `json:"doctorIds"`
	SearchSince        string        `json:"searchSince"`
}

type SlotItem struct {
	ID                 json.Number `json:"id"`
	AppointmentDate    string      `json:"appointmentDate"`
	SpecializationName string      `json:"specializationName"`
	DoctorName         string      `json:"doctorName"`
	ClinicName         string      `json:"clinicName"`
}

type SlotSearchResponse struct {
	Items []SlotItem `json:"items"`
}

// RescheduleAppointment is one colliding appointment from the script
// payload embedded in a conflicting booking process page. AppointmentDate
// uses the /Date(milliseconds)/ convention.
type RescheduleAppointment struct {
	AppointmentDate    string      `json:"AppointmentDate"`
	SpecializationName string      `json:"SpecializationName"`
	DoctorName         string      `json:"DoctorName"`
	ClinicName         string      `json:"ClinicName"`
	AppointmentID      json.Number `json:"AppointmentId"`
}
