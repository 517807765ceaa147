package amadeus

// FlightOffersResponse is the body of GET /v2/shopping/flight-offers.
type FlightOffersResponse struct {
	Data         []FlightOffer `json:"data"`
	Dictionaries *Dictionaries `json:"dictionaries,omitempty"`
}

type FlightOffer struct {
	ID               string            `json:"id"`
	Itineraries      []Itinerary       `json:"itineraries"`
	Price            *Price            `json:"price"`
	TravelerPricings []TravelerPricing `json:"travelerPricings"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   Endpoint  `json:"departure"`
	Arrival     Endpoint  `json:"arrival"`
	CarrierCode string    `json:"carrierCode"`
	Number      string    `json:"number"`
	Duration    string    `json:"duration"`
	Aircraft    *Aircraft `json:"aircraft,omitempty"`
}

type Endpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"` // local wall clock, no offset: 2006-01-02T15:04:05
}

type Aircraft struct {
	Code string `json:"code"`
}

type Price struct {
	Total      string `json:"total"`
	Currency   string `json:"currency"`
	GrandTotal string `json:"grandTotal,omitempty"`
}

type TravelerPricing struct {
	TravelerType string         `json:"travelerType"`
	Price        *TravelerPrice `json:"price,omitempty"`
}

type TravelerPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// Dictionaries are the code -> display name tables shipped next to the offers.
type Dictionaries struct {
	Carriers map[string]string `json:"carriers,omitempty"`
	Aircraft map[string]string `json:"aircraft,omitempty"`
}

// LocationsResponse is the body of GET /v1/reference-data/locations.
type LocationsResponse struct {
	Data []Location `json:"data"`
}

type Location struct {
	SubType  string   `json:"subType"`
	IataCode string   `json:"iataCode"`
	Name     string   `json:"name"`
	Address  *Address `json:"address,omitempty"`
}

type Address struct {
	CityName    string `json:"cityName"`
	CountryName string `json:"countryName"`
}

type errorResponse struct {
	Errors []errorItem `json:"errors"`
}

type errorItem struct {
	Status int    `json:"status"`
	Code   int    `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}
