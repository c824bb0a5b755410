package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bonk1990/gydytojas/internal/domain/entity"
	"github.com/bonk1990/gydytojas/internal/domain/repository"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"
)

// DefaultSimilarityFloor is the minimum similarity (0..1) a lookup text
// must reach to be accepted as a match. Deliberately low so typos and
// partial names still resolve.
const DefaultSimilarityFloor = 0.1

// UnresolvedFilterError means no lookup entry came close enough to the
// operator's query. Fatal to the whole run; there is no silent fallback.
type UnresolvedFilterError struct {
	Category string
	Query    string
}

func (e *UnresolvedFilterError) Error() string {
	return fmt.Sprintf("error translating %s %q to an id", e.Category, e.Query)
}

type ResolveFiltersUsecase interface {
	// ResolveAll builds one filter set per specialization and doctor
	// combination in the criteria.
	ResolveAll(ctx context.Context, criteria *entity.SearchCriteria) ([]*entity.SearchFilterSet, error)
}

type resolveFiltersUsecase struct {
	log        *logrus.Logger
	filterRepo repository.FilterRepository
	floor      float64
}

func NewResolveFiltersUsecase(log *logrus.Logger, filterRepo repository.FilterRepository, floor float64) ResolveFiltersUsecase {
	if floor <= 0 {
		floor = DefaultSimilarityFloor
	}
	return &resolveFiltersUsecase{
		log:        log,
		filterRepo: filterRepo,
		floor:      floor,
	}
}

func (u *resolveFiltersUsecase) ResolveAll(ctx context.Context, criteria *entity.SearchCriteria) ([]*entity.SearchFilterSet, error) {
	doctors := criteria.Doctors
	if len(doctors) == 0 {
		doctors = []string{""}
	}

	var filterSets []*entity.SearchFilterSet
	for _, specialization := range criteria.Specializations {
		for _, doctor := range doctors {
			filters, err := u.resolve(ctx, criteria, specialization, doctor)
			if err != nil {
				return nil, err
			}
			filterSets = append(filterSets, filters)
		}
	}
	return filterSets, nil
}

// resolve translates one specialization/doctor combination to portal ids.
// Categories are resolved strictly in sequence because the portal scopes
// each lookup list by the ids selected before it.
func (u *resolveFiltersUsecase) resolve(ctx context.Context, criteria *entity.SearchCriteria, specialization, doctor string) (*entity.SearchFilterSet, error) {
	catalog, err := u.filterRepo.GetInitialFilters(ctx)
	if err != nil {
		return nil, err
	}

	filters := &entity.SearchFilterSet{}

	// Without an explicit region the portal's home location applies.
	if criteria.Region != "" {
		regionID, err := u.matchOption(catalog.Regions, "regions", criteria.Region)
		if err != nil {
			return nil, err
		}
		filters.RegionIDs = []string{regionID}
	} else {
		filters.RegionIDs = []string{catalog.HomeLocationID}
	}

	serviceTypeID, err := u.matchOption(catalog.ServiceTypes, "serviceTypes", criteria.ServiceType)
	if err != nil {
		return nil, err
	}
	filters.ServiceTypeID = serviceTypeID

	catalog, err = u.filterRepo.GetFilteredData(ctx, filters)
	if err != nil {
		return nil, err
	}
	serviceID, err := u.matchOption(catalog.Services, "services", specialization)
	if err != nil {
		return nil, err
	}
	filters.ServiceIDs = []string{serviceID}

	if len(criteria.Clinics) > 0 {
		catalog, err = u.filterRepo.GetFilteredData(ctx, filters)
		if err != nil {
			return nil, err
		}
		for _, clinic := range criteria.Clinics {
			clinicID, err := u.matchOption(catalog.Clinics, "clinics", clinic)
			if err != nil {
				return nil, err
			}
			filters.ClinicIDs = append(filters.ClinicIDs, clinicID)
		}
	}

	if doctor != "" {
		catalog, err = u.filterRepo.GetFilteredData(ctx, filters)
		if err != nil {
			return nil, err
		}
		doctorID, err := u.matchOption(catalog.Doctors, "doctors", doctor)
		if err != nil {
			return nil, err
		}
		filters.DoctorIDs = []string{doctorID}
	}

	return filters, nil
}

// matchOption picks the single closest display text for the query,
// case-insensitively. The winner must clear the similarity floor; ties go
// to the earlier lookup entry, which keeps resolution deterministic.
func (u *resolveFiltersUsecase) matchOption(options []entity.FilterOption, category, query string) (string, error) {
	bestScore := -1.0
	var best entity.FilterOption

	for _, option := range options {
		score := similarity(strings.ToLower(query), strings.ToLower(option.Text))
		if score > bestScore {
			bestScore = score
			best = option
		}
	}

	if bestScore < u.floor {
		return "", &UnresolvedFilterError{Category: category, Query: query}
	}

	u.log.Infof("Translated %s %q to id %q (%q).", category, query, best.ID, best.Text)
	return best.ID, nil
}

// similarity maps edit distance onto a 0..1 scale relative to the longer
// string.
func similarity(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}
