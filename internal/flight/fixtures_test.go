package flight

import (
	"fmt"
	"testing"

	"flightsearch/pkg/amadeus"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func segment(from, to, dep, arr, carrier, number, duration, aircraft string) amadeus.Segment {
	return amadeus.Segment{
		Departure:   amadeus.Endpoint{IataCode: from, At: dep},
		Arrival:     amadeus.Endpoint{IataCode: to, At: arr},
		CarrierCode: carrier,
		Number:      number,
		Duration:    duration,
		Aircraft:    &amadeus.Aircraft{Code: aircraft},
	}
}

// cdgAmsJfk is a one-way connection priced without grandTotal.
func cdgAmsJfk() amadeus.FlightOffer {
	return amadeus.FlightOffer{
		ID: "1",
		Itineraries: []amadeus.Itinerary{{
			Duration: "PT11H5M",
			Segments: []amadeus.Segment{
				segment("CDG", "AMS", "2026-11-20T07:05:00", "2026-11-20T08:25:00", "KL", "1228", "PT1H20M", "73H"),
				segment("AMS", "JFK", "2026-11-20T10:30:00", "2026-11-20T12:10:00", "KL", "641", "PT7H40M", "333"),
			},
		}},
		Price: &amadeus.Price{Total: "450.00", Currency: "EUR"},
		TravelerPricings: []amadeus.TravelerPricing{
			{TravelerType: "ADULT", Price: &amadeus.TravelerPrice{Total: "450.00", Currency: "EUR"}},
		},
	}
}

var testDictionaries = &amadeus.Dictionaries{
	Carriers: map[string]string{"KL": "KLM ROYAL DUTCH AIRLINES", "AF": "AIR FRANCE"},
	Aircraft: map[string]string{"73H": "BOEING 737-800", "333": "AIRBUS A330-300"},
}

// testFlight builds a normalized flight directly for the pure pipeline tests.
func testFlight(t *testing.T, id, carrier string, stops int, price, departure, arrival string) Flight {
	t.Helper()

	dep, err := ParseLocalDateTime("2026-11-20T" + departure + ":00")
	require.NoError(t, err)
	arr, err := ParseLocalDateTime("2026-11-20T" + arrival + ":00")
	require.NoError(t, err)

	segments := make([]FlightSegment, stops+1)
	for i := range segments {
		segments[i] = FlightSegment{CarrierCode: carrier, CarrierName: carrier + " Airlines"}
	}

	return Flight{
		ID:                     id,
		TotalPrice:             decimal.RequireFromString(price),
		Currency:               "EUR",
		NumberOfStops:          stops,
		IsDirect:               stops == 0,
		OutboundSegments:       segments,
		ReturnSegments:         []FlightSegment{},
		DepartureTime:          dep,
		ArrivalTime:            arr,
		FormattedDepartureTime: dep.HourMinute(),
		FormattedArrivalTime:   arr.HourMinute(),
		MainCarrierCode:        carrier,
		MainCarrierName:        carrier + " Airlines",
		StopsDescription:       describeStops(stops),
	}
}

func ids(flights []Flight) []string {
	out := make([]string, len(flights))
	for i, f := range flights {
		out[i] = f.ID
	}
	return out
}

func manyFlights(t *testing.T, n int) []Flight {
	t.Helper()
	flights := make([]Flight, n)
	for i := range flights {
		flights[i] = testFlight(t, fmt.Sprintf("f%02d", i+1), "AF", i%3, fmt.Sprintf("%d.00", 100+i), "08:00", "10:00")
	}
	return flights
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int) *int {
	return &n
}
