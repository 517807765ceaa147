package flight

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortByPrice         SortKey = "price"
	SortByPriceDesc     SortKey = "price_desc"
	SortByDuration      SortKey = "duration"
	SortByDurationDesc  SortKey = "duration_desc"
	SortByDeparture     SortKey = "departure"
	SortByDepartureDesc SortKey = "departure_desc"
	SortByStops         SortKey = "stops"
)

var SortKeys = []SortKey{
	SortByPrice,
	SortByPriceDesc,
	SortByDuration,
	SortByDurationDesc,
	SortByDeparture,
	SortByDepartureDesc,
	SortByStops,
}

// ParseSortKey falls back to price ascending for unknown or empty keys.
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortKeys {
		if k == known {
			return k
		}
	}
	return SortByPrice
}

// Sort returns a sorted copy. Ties keep their input order so repeated calls
// over the same list give the same pages.
func Sort(flights []Flight, key SortKey) []Flight {
	sorted := make([]Flight, len(flights))
	copy(sorted, flights)
	if len(sorted) <= 1 {
		return sorted
	}

	var less func(a, b Flight) bool
	switch ParseSortKey(string(key)) {
	case SortByPriceDesc:
		less = func(a, b Flight) bool { return a.TotalPrice.GreaterThan(b.TotalPrice) }
	case SortByDuration:
		less = func(a, b Flight) bool { return a.TotalDurationMinutes < b.TotalDurationMinutes }
	case SortByDurationDesc:
		less = func(a, b Flight) bool { return a.TotalDurationMinutes > b.TotalDurationMinutes }
	case SortByDeparture:
		less = func(a, b Flight) bool { return a.DepartureTime.Before(b.DepartureTime.Time) }
	case SortByDepartureDesc:
		less = func(a, b Flight) bool { return a.DepartureTime.After(b.DepartureTime.Time) }
	case SortByStops:
		less = func(a, b Flight) bool { return a.NumberOfStops < b.NumberOfStops }
	default:
		less = func(a, b Flight) bool { return a.TotalPrice.LessThan(b.TotalPrice) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}
