package flight

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const localDateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime is an airport-local wall clock reading. No zone is attached
// and none is ever applied: 10:30 at CDG and 10:30 at JFK compare as equal.
type LocalDateTime struct {
	time.Time
}

func ParseLocalDateTime(s string) (LocalDateTime, error) {
	t, err := time.Parse(localDateTimeLayout, s)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{Time: t}, nil
}

func (t LocalDateTime) String() string {
	return t.Format(localDateTimeLayout)
}

// HourMinute returns the zero padded HH:MM used for time-of-day filtering.
func (t LocalDateTime) HourMinute() string {
	return t.Format("15:04")
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*t = LocalDateTime{}
		return nil
	}
	parsed, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type FlightSegment struct {
	DepartureAirportCode   string        `json:"departure_airport_code"`
	ArrivalAirportCode     string        `json:"arrival_airport_code"`
	DepartureDateTime      LocalDateTime `json:"departure_date_time"`
	ArrivalDateTime        LocalDateTime `json:"arrival_date_time"`
	CarrierCode            string        `json:"carrier_code"`
	CarrierName            string        `json:"carrier_name"`
	FlightNumber           string        `json:"flight_number"`
	Duration               string        `json:"duration"`
	DurationMinutes        int           `json:"duration_minutes"`
	AircraftType           string        `json:"aircraft_type"`
	FormattedDepartureTime string        `json:"formatted_departure_time"`
	FormattedArrivalTime   string        `json:"formatted_arrival_time"`
	FormattedDuration      string        `json:"formatted_duration"`
}

// Flight is one normalized offer. Every display field is filled once by the
// normalizer and the value is never modified afterwards.
type Flight struct {
	ID                      string          `json:"id"`
	TotalPrice              decimal.Decimal `json:"total_price"`
	PricePerAdult           decimal.Decimal `json:"price_per_adult"`
	Currency                string          `json:"currency"`
	TotalDuration           string          `json:"total_duration"`
	TotalDurationMinutes    int             `json:"total_duration_minutes"`
	NumberOfStops           int             `json:"number_of_stops"`
	OutboundSegments        []FlightSegment `json:"outbound_segments"`
	ReturnSegments          []FlightSegment `json:"return_segments"`
	IsDirect                bool            `json:"is_direct"`
	DepartureTime           LocalDateTime   `json:"departure_time"`
	ArrivalTime             LocalDateTime   `json:"arrival_time"`
	FormattedDepartureTime  string          `json:"formatted_departure_time"`
	FormattedArrivalTime    string          `json:"formatted_arrival_time"`
	MainCarrierCode         string          `json:"main_carrier_code"`
	MainCarrierName         string          `json:"main_carrier_name"`
	FormattedTotalDuration  string          `json:"formatted_total_duration"`
	FormattedReturnDuration string          `json:"formatted_return_duration,omitempty"`
	FormattedPrice          string          `json:"formatted_price"`
	StopsDescription        string          `json:"stops_description"`
}

const (
	DefaultTravelClass = "ECONOMY"
	dateLayout         = "2006-01-02"
)

type FlightSearchRequest struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`        // YYYY-MM-DD
	ReturnDate    string  `json:"return_date,omitempty"` // empty for one-way
	Adults        int     `json:"adults"`
	Children      int     `json:"children"`
	Infants       int     `json:"infants"`
	TravelClass   string  `json:"travel_class"`
	SortBy        SortKey `json:"sort_by,omitempty"`
}

// NewFlightSearchRequest returns a request with the documented defaults.
// JSON decoding into it only overwrites the fields the caller sent.
func NewFlightSearchRequest() FlightSearchRequest {
	return FlightSearchRequest{
		Adults:      1,
		TravelClass: DefaultTravelClass,
		SortBy:      SortByPrice,
	}
}

func (r FlightSearchRequest) IsRoundTrip() bool {
	return r.ReturnDate != ""
}

func (r FlightSearchRequest) TotalPassengers() int {
	return r.Adults + r.Children + r.Infants
}

func (r FlightSearchRequest) normalized() FlightSearchRequest {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
	r.DepartureDate = strings.TrimSpace(r.DepartureDate)
	r.ReturnDate = strings.TrimSpace(r.ReturnDate)
	r.TravelClass = strings.ToUpper(strings.TrimSpace(r.TravelClass))
	if r.TravelClass == "" {
		r.TravelClass = DefaultTravelClass
	}
	return r
}

type FlightSearchResult struct {
	SearchID        string              `json:"search_id,omitempty"`
	Success         bool                `json:"success"`
	ErrorCode       ErrorCode           `json:"error_code,omitempty"`
	ErrorMessage    string              `json:"error_message,omitempty"`
	Flights         []Flight            `json:"flights"`
	TotalResults    int                 `json:"total_results"`
	SearchTimestamp time.Time           `json:"search_timestamp"`
	OriginalRequest FlightSearchRequest `json:"original_request"`
	Facets          *Facets             `json:"facets,omitempty"`
	CacheHit        bool                `json:"cache_hit"`
}

// setFlights replaces the list and keeps TotalResults in step with it.
func (r *FlightSearchResult) setFlights(flights []Flight) {
	if flights == nil {
		flights = []Flight{}
	}
	r.Flights = flights
	r.TotalResults = len(flights)
}
