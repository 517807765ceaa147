package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"flightsearch/pkg/amadeus"
)

var locations = []amadeus.Location{
	airport("CDG", "CHARLES DE GAULLE", "PARIS", "FRANCE"),
	airport("ORY", "ORLY", "PARIS", "FRANCE"),
	city("PAR", "PARIS", "FRANCE"),
	airport("AMS", "SCHIPHOL", "AMSTERDAM", "NETHERLANDS"),
	airport("FRA", "FRANKFURT INTL", "FRANKFURT", "GERMANY"),
	airport("LHR", "HEATHROW", "LONDON", "UNITED KINGDOM"),
	airport("LGW", "GATWICK", "LONDON", "UNITED KINGDOM"),
	city("LON", "LONDON", "UNITED KINGDOM"),
	airport("MAD", "ADOLFO SUAREZ BARAJAS", "MADRID", "SPAIN"),
	airport("JFK", "JOHN F KENNEDY INTL", "NEW YORK", "UNITED STATES OF AMERICA"),
	airport("EWR", "NEWARK LIBERTY INTL", "NEW YORK", "UNITED STATES OF AMERICA"),
	city("NYC", "NEW YORK", "UNITED STATES OF AMERICA"),
}

func airport(iata, name, cityName, country string) amadeus.Location {
	return amadeus.Location{SubType: "AIRPORT", IataCode: iata, Name: name, Address: &amadeus.Address{CityName: cityName, CountryName: country}}
}

func city(iata, name, country string) amadeus.Location {
	return amadeus.Location{SubType: "CITY", IataCode: iata, Name: name, Address: &amadeus.Address{CityName: name, CountryName: country}}
}

func LocationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	keyword := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("keyword")))
	if keyword == "" {
		writeErrors(w, http.StatusBadRequest, apiError{Code: 32171, Title: "MANDATORY DATA MISSING", Detail: "keyword is required"})
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("page[limit]"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	matches := make([]amadeus.Location, 0)
	for _, loc := range locations {
		if len(matches) >= limit {
			break
		}
		if strings.HasPrefix(loc.IataCode, keyword) ||
			strings.Contains(loc.Name, keyword) ||
			strings.HasPrefix(loc.Address.CityName, keyword) {
			matches = append(matches, loc)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(amadeus.LocationsResponse{Data: matches})
}
