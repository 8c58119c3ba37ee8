package account

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimePeriod = errors.New("time period must be AM or PM")

// FilterDoctors selects one of eight strategies based on which of the three
// optional criteria are present. Name and specialty go to the repository;
// the AM/PM filter is applied in memory over configured available times.
func (s *Service) FilterDoctors(ctx context.Context, name, specialty, period *string) ([]Doctor, error) {
	if period != nil {
		if *period != "AM" && *period != "PM" {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidTimePeriod, *period)
		}
	}

	var (
		doctors []Doctor
		err     error
	)

	switch {
	case name != nil && specialty != nil && period != nil:
		doctors, err = s.repo.FindDoctorsByNameAndSpecialty(ctx, *name, *specialty)
		if err == nil {
			doctors = filterByPeriod(doctors, *period)
		}
	case name != nil && specialty != nil:
		doctors, err = s.repo.FindDoctorsByNameAndSpecialty(ctx, *name, *specialty)
	case name != nil && period != nil:
		doctors, err = s.repo.FindDoctorsByName(ctx, *name)
		if err == nil {
			doctors = filterByPeriod(doctors, *period)
		}
	case specialty != nil && period != nil:
		doctors, err = s.repo.FindDoctorsBySpecialty(ctx, *specialty)
		if err == nil {
			doctors = filterByPeriod(doctors, *period)
		}
	case name != nil:
		doctors, err = s.repo.FindDoctorsByName(ctx, *name)
	case specialty != nil:
		doctors, err = s.repo.FindDoctorsBySpecialty(ctx, *specialty)
	case period != nil:
		doctors, err = s.repo.ListDoctors(ctx)
		if err == nil {
			doctors = filterByPeriod(doctors, *period)
		}
	default:
		doctors, err = s.repo.ListDoctors(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("filter doctors: %w", err)
	}
	return doctors, nil
}

// filterByPeriod keeps doctors with at least one configured time in the
// requested half of the day. A time counts as AM when strictly before noon.
func filterByPeriod(doctors []Doctor, period string) []Doctor {
	var result []Doctor
	for _, d := range doctors {
		if anyInPeriod(d.AvailableTimes, period) {
			result = append(result, d)
		}
	}
	return result
}

var noon = mustClock("12:00")

func anyInPeriod(times []string, period string) bool {
	for _, raw := range times {
		t, err := time.Parse("15:04", raw)
		if err != nil {
			continue
		}
		if period == "AM" {
			if t.Before(noon) {
				return true
			}
		} else if !t.Before(noon) {
			return true
		}
	}
	return false
}

func mustClock(s string) time.Time {
	t, err := time.Parse("15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}
