package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flightsearch/pkg/amadeus"
)

const (
	atLayout       = "2006-01-02T15:04:05"
	layoverMinutes = 95
)

type leg struct {
	via     string // empty for a direct flight
	depart  string // HH:MM
	minutes []int  // per segment block time
}

type offerTemplate struct {
	carrier  string
	flight   int
	aircraft string
	price    float64
	out      leg
	back     leg
}

var templates = []offerTemplate{
	{carrier: "AF", flight: 11, aircraft: "359", price: 412.20, out: leg{depart: "10:35", minutes: []int{505}}, back: leg{depart: "18:40", minutes: []int{440}}},
	{carrier: "KL", flight: 1228, aircraft: "73H", price: 388.00, out: leg{via: "AMS", depart: "07:05", minutes: []int{80, 460}}, back: leg{via: "AMS", depart: "17:30", minutes: []int{420, 75}}},
	{carrier: "LH", flight: 1027, aircraft: "32N", price: 356.75, out: leg{via: "FRA", depart: "06:15", minutes: []int{75, 520}}, back: leg{via: "FRA", depart: "20:10", minutes: []int{470, 70}}},
	{carrier: "DL", flight: 265, aircraft: "333", price: 529.90, out: leg{depart: "13:20", minutes: []int{515}}, back: leg{depart: "22:05", minutes: []int{430}}},
	{carrier: "BA", flight: 305, aircraft: "77W", price: 301.40, out: leg{via: "LHR", depart: "19:25", minutes: []int{70, 480}}, back: leg{via: "LHR", depart: "08:50", minutes: []int{415, 65}}},
	{carrier: "IB", flight: 3401, aircraft: "321", price: 298.10, out: leg{via: "MAD", depart: "23:45", minutes: []int{120, 530}}, back: leg{via: "MAD", depart: "12:15", minutes: []int{455, 115}}},
}

var carrierNames = map[string]string{
	"AF": "AIR FRANCE",
	"KL": "KLM ROYAL DUTCH AIRLINES",
	"LH": "LUFTHANSA",
	"DL": "DELTA AIR LINES",
	"BA": "BRITISH AIRWAYS",
	"IB": "IBERIA",
}

var aircraftNames = map[string]string{
	"359": "AIRBUS A350-900",
	"73H": "BOEING 737-800",
	"32N": "AIRBUS A320NEO",
	"333": "AIRBUS A330-300",
	"77W": "BOEING 777-300ER",
	"321": "AIRBUS A321",
}

func FlightOffersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	origin := strings.ToUpper(q.Get("originLocationCode"))
	destination := strings.ToUpper(q.Get("destinationLocationCode"))
	if origin == "" || destination == "" || q.Get("departureDate") == "" {
		writeErrors(w, http.StatusBadRequest, apiError{Code: 32171, Title: "MANDATORY DATA MISSING", Detail: "originLocationCode, destinationLocationCode and departureDate are required"})
		return
	}

	departure, err := time.Parse("2006-01-02", q.Get("departureDate"))
	if err != nil {
		writeErrors(w, http.StatusBadRequest, apiError{Code: 477, Title: "INVALID FORMAT", Detail: "departureDate must be YYYY-MM-DD"})
		return
	}

	var returnDate time.Time
	if raw := q.Get("returnDate"); raw != "" {
		if returnDate, err = time.Parse("2006-01-02", raw); err != nil {
			writeErrors(w, http.StatusBadRequest, apiError{Code: 477, Title: "INVALID FORMAT", Detail: "returnDate must be YYYY-MM-DD"})
			return
		}
	}

	adults, _ := strconv.Atoi(q.Get("adults"))
	if adults < 1 {
		adults = 1
	}
	currency := q.Get("currencyCode")
	if currency == "" {
		currency = "EUR"
	}
	maxResults, _ := strconv.Atoi(q.Get("max"))

	resp := buildOffers(origin, destination, departure, returnDate, adults, currency, maxResults)

	delay := 50 + rand.Intn(51)
	time.Sleep(time.Duration(delay) * time.Millisecond)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func buildOffers(origin, destination string, departure, returnDate time.Time, adults int, currency string, maxResults int) amadeus.FlightOffersResponse {
	resp := amadeus.FlightOffersResponse{
		Data: []amadeus.FlightOffer{},
		Dictionaries: &amadeus.Dictionaries{
			Carriers: map[string]string{},
			Aircraft: map[string]string{},
		},
	}

	for i, tpl := range templates {
		if maxResults > 0 && len(resp.Data) >= maxResults {
			break
		}
		if tpl.out.via == origin || tpl.out.via == destination {
			continue
		}

		itineraries := []amadeus.Itinerary{buildItinerary(tpl, tpl.out, origin, destination, departure)}
		if !returnDate.IsZero() {
			itineraries = append(itineraries, buildItinerary(tpl, tpl.back, destination, origin, returnDate))
		}

		perAdult := tpl.price
		if !returnDate.IsZero() {
			perAdult *= 1.8
		}
		total := perAdult * float64(adults)

		pricings := make([]amadeus.TravelerPricing, 0, adults)
		for range adults {
			pricings = append(pricings, amadeus.TravelerPricing{
				TravelerType: "ADULT",
				Price:        &amadeus.TravelerPrice{Total: money(perAdult), Currency: currency},
			})
		}

		resp.Data = append(resp.Data, amadeus.FlightOffer{
			ID:          strconv.Itoa(i + 1),
			Itineraries: itineraries,
			Price: &amadeus.Price{
				Total:      money(total),
				GrandTotal: money(total),
				Currency:   currency,
			},
			TravelerPricings: pricings,
		})
		resp.Dictionaries.Carriers[tpl.carrier] = carrierNames[tpl.carrier]
		resp.Dictionaries.Aircraft[tpl.aircraft] = aircraftNames[tpl.aircraft]
	}

	return resp
}

func buildItinerary(tpl offerTemplate, l leg, from, to string, day time.Time) amadeus.Itinerary {
	clock, _ := time.Parse("15:04", l.depart)
	at := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)

	stops := []string{from, to}
	if l.via != "" {
		stops = []string{from, l.via, to}
	}

	start := at
	segments := make([]amadeus.Segment, 0, len(l.minutes))
	for i, block := range l.minutes {
		arrive := at.Add(time.Duration(block) * time.Minute)
		segments = append(segments, amadeus.Segment{
			Departure:   amadeus.Endpoint{IataCode: stops[i], At: at.Format(atLayout)},
			Arrival:     amadeus.Endpoint{IataCode: stops[i+1], At: arrive.Format(atLayout)},
			CarrierCode: tpl.carrier,
			Number:      strconv.Itoa(tpl.flight + i),
			Duration:    isoDuration(block),
			Aircraft:    &amadeus.Aircraft{Code: tpl.aircraft},
		})
		at = arrive.Add(layoverMinutes * time.Minute)
	}

	elapsed := int(at.Add(-layoverMinutes*time.Minute).Sub(start).Minutes())
	return amadeus.Itinerary{Duration: isoDuration(elapsed), Segments: segments}
}

func isoDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("PT%dM", m)
	case m == 0:
		return fmt.Sprintf("PT%dH", h)
	default:
		return fmt.Sprintf("PT%dH%dM", h, m)
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
