package flight

import (
	"errors"
	"fmt"
	"strconv"

	"flightsearch/pkg/amadeus"

	"github.com/shopspring/decimal"
)

const travelerTypeAdult = "ADULT"

var (
	ErrMissingPrice     = errors.New("offer has no price")
	ErrMissingItinerary = errors.New("offer has no outbound segments")
)

// Dictionaries resolves carrier and aircraft codes to display names. A code
// without an entry resolves to itself.
type Dictionaries struct {
	carriers map[string]string
	aircraft map[string]string
}

func NewDictionaries(d *amadeus.Dictionaries) Dictionaries {
	if d == nil {
		return Dictionaries{}
	}
	return Dictionaries{carriers: d.Carriers, aircraft: d.Aircraft}
}

func (d Dictionaries) CarrierName(code string) string {
	if name, ok := d.carriers[code]; ok && name != "" {
		return name
	}
	return code
}

func (d Dictionaries) AircraftName(code string) string {
	if name, ok := d.aircraft[code]; ok && name != "" {
		return name
	}
	return code
}

// NormalizeOffers converts a whole upstream page. The first bad offer fails
// the batch; nothing is skipped.
func NormalizeOffers(resp *amadeus.FlightOffersResponse) ([]Flight, error) {
	if resp == nil {
		return []Flight{}, nil
	}

	dict := NewDictionaries(resp.Dictionaries)
	flights := make([]Flight, 0, len(resp.Data))
	for _, offer := range resp.Data {
		f, err := NormalizeOffer(offer, dict)
		if err != nil {
			return nil, fmt.Errorf("normalize offer %s: %w", offer.ID, err)
		}
		flights = append(flights, f)
	}
	return flights, nil
}

func NormalizeOffer(offer amadeus.FlightOffer, dict Dictionaries) (Flight, error) {
	if offer.Price == nil {
		return Flight{}, ErrMissingPrice
	}

	total, err := offerTotal(offer.Price)
	if err != nil {
		return Flight{}, err
	}
	perAdult, err := adultPrice(offer.TravelerPricings)
	if err != nil {
		return Flight{}, err
	}

	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return Flight{}, ErrMissingItinerary
	}
	outbound, err := normalizeSegments(offer.Itineraries[0].Segments, dict)
	if err != nil {
		return Flight{}, fmt.Errorf("outbound: %w", err)
	}

	var inbound []FlightSegment
	if len(offer.Itineraries) > 1 {
		inbound, err = normalizeSegments(offer.Itineraries[1].Segments, dict)
		if err != nil {
			return Flight{}, fmt.Errorf("return: %w", err)
		}
	}
	if inbound == nil {
		inbound = []FlightSegment{}
	}

	token := offer.Itineraries[0].Duration
	minutes, display, err := ParseDuration(token)
	if err != nil {
		return Flight{}, err
	}
	if token == "" {
		display = joinSegmentDurations(outbound)
		for _, s := range outbound {
			minutes += s.DurationMinutes
		}
	}

	first, last := outbound[0], outbound[len(outbound)-1]
	stops := len(outbound) - 1

	f := Flight{
		ID:                     offer.ID,
		TotalPrice:             total,
		PricePerAdult:          perAdult,
		Currency:               offer.Price.Currency,
		TotalDuration:          token,
		TotalDurationMinutes:   minutes,
		NumberOfStops:          stops,
		OutboundSegments:       outbound,
		ReturnSegments:         inbound,
		IsDirect:               stops == 0,
		DepartureTime:          first.DepartureDateTime,
		ArrivalTime:            last.ArrivalDateTime,
		FormattedDepartureTime: first.FormattedDepartureTime,
		FormattedArrivalTime:   last.FormattedArrivalTime,
		MainCarrierCode:        first.CarrierCode,
		MainCarrierName:        first.CarrierName,
		FormattedTotalDuration: display,
		FormattedPrice:         formatPrice(total, offer.Price.Currency),
		StopsDescription:       describeStops(stops),
	}
	if len(inbound) > 0 {
		f.FormattedReturnDuration = joinSegmentDurations(inbound)
	}
	return f, nil
}

func offerTotal(p *amadeus.Price) (decimal.Decimal, error) {
	raw := p.GrandTotal
	if raw == "" {
		raw = p.Total
	}
	if raw == "" {
		return decimal.Zero, ErrMissingPrice
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return d, nil
}

func adultPrice(pricings []amadeus.TravelerPricing) (decimal.Decimal, error) {
	for _, tp := range pricings {
		if tp.TravelerType != travelerTypeAdult {
			continue
		}
		if tp.Price == nil || tp.Price.Total == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(tp.Price.Total)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid adult price %q: %w", tp.Price.Total, err)
		}
		return d, nil
	}
	return decimal.Zero, nil
}

func normalizeSegments(raw []amadeus.Segment, dict Dictionaries) ([]FlightSegment, error) {
	segments := make([]FlightSegment, 0, len(raw))
	for i, s := range raw {
		seg, err := normalizeSegment(s, dict)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func normalizeSegment(s amadeus.Segment, dict Dictionaries) (FlightSegment, error) {
	dep, err := ParseLocalDateTime(s.Departure.At)
	if err != nil {
		return FlightSegment{}, fmt.Errorf("departure time: %w", err)
	}
	arr, err := ParseLocalDateTime(s.Arrival.At)
	if err != nil {
		return FlightSegment{}, fmt.Errorf("arrival time: %w", err)
	}
	minutes, display, err := ParseDuration(s.Duration)
	if err != nil {
		return FlightSegment{}, err
	}

	var aircraftCode string
	if s.Aircraft != nil {
		aircraftCode = s.Aircraft.Code
	}

	return FlightSegment{
		DepartureAirportCode:   s.Departure.IataCode,
		ArrivalAirportCode:     s.Arrival.IataCode,
		DepartureDateTime:      dep,
		ArrivalDateTime:        arr,
		CarrierCode:            s.CarrierCode,
		CarrierName:            dict.CarrierName(s.CarrierCode),
		FlightNumber:           s.Number,
		Duration:               s.Duration,
		DurationMinutes:        minutes,
		AircraftType:           dict.AircraftName(aircraftCode),
		FormattedDepartureTime: dep.HourMinute(),
		FormattedArrivalTime:   arr.HourMinute(),
		FormattedDuration:      display,
	}, nil
}

func formatPrice(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return amount.StringFixed(2) + " " + currency
}

func describeStops(n int) string {
	switch n {
	case 0:
		return "Direct"
	case 1:
		return "1 stop"
	default:
		return strconv.Itoa(n) + " stops"
	}
}
