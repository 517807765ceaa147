package flight

import (
	"strings"

	"github.com/shopspring/decimal"
)

type FlightType string

const (
	FlightTypeAll       FlightType = "all"
	FlightTypeDirect    FlightType = "direct"
	FlightTypeWithStops FlightType = "withStops"
)

// ParseFlightType accepts the stopover alias; anything unrecognised means all.
func ParseFlightType(s string) FlightType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "direct":
		return FlightTypeDirect
	case "withstops", "stopover":
		return FlightTypeWithStops
	default:
		return FlightTypeAll
	}
}

type TimePeriod string

const (
	PeriodMorning   TimePeriod = "morning"
	PeriodAfternoon TimePeriod = "afternoon"
	PeriodEvening   TimePeriod = "evening"
	PeriodNight     TimePeriod = "night"
)

// timeBucket compares zero padded HH:MM strings, which order the same way
// as the clock. Upper bounds are exclusive unless closed is set.
type timeBucket struct {
	from   string
	to     string
	closed bool
}

func (b timeBucket) contains(hm string) bool {
	if hm < b.from {
		return false
	}
	if b.closed {
		return hm <= b.to
	}
	return hm < b.to
}

var timeBuckets = map[TimePeriod]timeBucket{
	PeriodMorning:   {from: "06:00", to: "12:00"},
	PeriodAfternoon: {from: "12:00", to: "19:00"},
	PeriodEvening:   {from: "19:00", to: "23:59", closed: true},
	PeriodNight:     {from: "00:00", to: "06:00"},
}

// ActiveFilters is the refinement state. Categories combine with AND, the
// values inside a multi-select category with OR. Zero value filters nothing.
type ActiveFilters struct {
	Airlines         []string         `json:"airlines,omitempty"`
	FlightType       FlightType       `json:"flight_type,omitempty"`
	MaxStops         *int             `json:"max_stops,omitempty"` // exact stop count, not an upper bound
	DeparturePeriods []TimePeriod     `json:"departure_periods,omitempty"`
	ArrivalPeriods   []TimePeriod     `json:"arrival_periods,omitempty"`
	MinPrice         *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice         *decimal.Decimal `json:"max_price,omitempty"`
}

func (f ActiveFilters) clone() ActiveFilters {
	out := f
	out.Airlines = append([]string(nil), f.Airlines...)
	out.DeparturePeriods = append([]TimePeriod(nil), f.DeparturePeriods...)
	out.ArrivalPeriods = append([]TimePeriod(nil), f.ArrivalPeriods...)
	if f.MaxStops != nil {
		n := *f.MaxStops
		out.MaxStops = &n
	}
	if f.MinPrice != nil {
		d := *f.MinPrice
		out.MinPrice = &d
	}
	if f.MaxPrice != nil {
		d := *f.MaxPrice
		out.MaxPrice = &d
	}
	return out
}

// filterContext holds the filters resolved once per call instead of once
// per flight.
type filterContext struct {
	airlines   map[string]struct{}
	flightType FlightType
	maxStops   *int
	departure  []timeBucket
	arrival    []timeBucket
	minPrice   *decimal.Decimal
	maxPrice   *decimal.Decimal
}

func newFilterContext(f ActiveFilters) filterContext {
	fc := filterContext{
		flightType: ParseFlightType(string(f.FlightType)),
		maxStops:   f.MaxStops,
		departure:  resolveBuckets(f.DeparturePeriods),
		arrival:    resolveBuckets(f.ArrivalPeriods),
		minPrice:   f.MinPrice,
		maxPrice:   f.MaxPrice,
	}
	if len(f.Airlines) > 0 {
		fc.airlines = make(map[string]struct{}, len(f.Airlines))
		for _, code := range f.Airlines {
			fc.airlines[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
		}
	}
	return fc
}

// resolveBuckets drops unknown period names.
func resolveBuckets(periods []TimePeriod) []timeBucket {
	var out []timeBucket
	for _, p := range periods {
		if b, ok := timeBuckets[TimePeriod(strings.ToLower(strings.TrimSpace(string(p))))]; ok {
			out = append(out, b)
		}
	}
	return out
}

func (fc filterContext) match(f Flight) bool {
	if fc.airlines != nil {
		if _, ok := fc.airlines[strings.ToUpper(f.MainCarrierCode)]; !ok {
			return false
		}
	}

	switch fc.flightType {
	case FlightTypeDirect:
		if !f.IsDirect {
			return false
		}
	case FlightTypeWithStops:
		if f.IsDirect {
			return false
		}
	}

	if fc.maxStops != nil && f.NumberOfStops != *fc.maxStops {
		return false
	}

	if len(fc.departure) > 0 && !inAnyBucket(fc.departure, f.FormattedDepartureTime) {
		return false
	}
	if len(fc.arrival) > 0 && !inAnyBucket(fc.arrival, f.FormattedArrivalTime) {
		return false
	}

	if fc.minPrice != nil && f.TotalPrice.LessThan(*fc.minPrice) {
		return false
	}
	if fc.maxPrice != nil && f.TotalPrice.GreaterThan(*fc.maxPrice) {
		return false
	}

	return true
}

func inAnyBucket(buckets []timeBucket, hm string) bool {
	for _, b := range buckets {
		if b.contains(hm) {
			return true
		}
	}
	return false
}

// Filter returns the flights matching every active category, in input order.
// The input slice is not modified.
func Filter(flights []Flight, filters ActiveFilters) []Flight {
	fc := newFilterContext(filters)
	filtered := make([]Flight, 0, len(flights))
	for _, f := range flights {
		if fc.match(f) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
