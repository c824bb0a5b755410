package entity

// FilterOption is one {text, id} pair from the portal's lookup data.
type FilterOption struct {
	ID   string
	Text string
}

// FilterCatalog is the lookup data returned by the portal's filter
// endpoints. Later categories are scoped by whatever has been resolved
// so far, so the catalog is re-fetched between resolution steps.
type FilterCatalog struct {
	Regions        []FilterOption
	ServiceTypes   []FilterOption
	Services       []FilterOption
	Clinics        []FilterOption
	Doctors        []FilterOption
	HomeLocationID string
}

// SearchFilterSet is the resolved set of portal-internal ids scoping one
// slot search. Built once per specialization and doctor combination,
// immutable afterwards.
type SearchFilterSet struct {
	RegionIDs     []string
	ServiceTypeID string
	ServiceIDs    []string
	ClinicIDs     []string
	DoctorIDs     []string
}
