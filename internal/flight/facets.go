package flight

import (
	"sort"

	"github.com/shopspring/decimal"
)

type AirlineFacet struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Facets are the filter options observed in one result set. They populate
// controls only; a filter value outside them is still valid.
type Facets struct {
	Airlines   []AirlineFacet `json:"airlines"`
	StopCounts []int          `json:"stop_counts"`
	PriceRange PriceRange     `json:"price_range"`
}

// ExtractFacets reads facets from an unfiltered result. An empty list keeps
// the previous price range.
func ExtractFacets(flights []Flight, previous PriceRange) Facets {
	facets := Facets{
		Airlines:   []AirlineFacet{},
		StopCounts: []int{},
		PriceRange: previous,
	}
	if len(flights) == 0 {
		return facets
	}

	seenAirline := make(map[AirlineFacet]struct{})
	seenStops := make(map[int]struct{})
	minPrice, maxPrice := flights[0].TotalPrice, flights[0].TotalPrice

	for _, f := range flights {
		a := AirlineFacet{Code: f.MainCarrierCode, Name: f.MainCarrierName}
		if _, ok := seenAirline[a]; !ok {
			seenAirline[a] = struct{}{}
			facets.Airlines = append(facets.Airlines, a)
		}
		if _, ok := seenStops[f.NumberOfStops]; !ok {
			seenStops[f.NumberOfStops] = struct{}{}
			facets.StopCounts = append(facets.StopCounts, f.NumberOfStops)
		}
		minPrice = decimal.Min(minPrice, f.TotalPrice)
		maxPrice = decimal.Max(maxPrice, f.TotalPrice)
	}

	sort.SliceStable(facets.Airlines, func(i, j int) bool {
		if facets.Airlines[i].Name != facets.Airlines[j].Name {
			return facets.Airlines[i].Name < facets.Airlines[j].Name
		}
		return facets.Airlines[i].Code < facets.Airlines[j].Code
	})
	sort.Ints(facets.StopCounts)
	facets.PriceRange = PriceRange{Min: minPrice, Max: maxPrice}

	return facets
}
