package airport

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"flightsearch/pkg/amadeus"
	"flightsearch/pkg/cache"
	"flightsearch/pkg/logger"
)

const (
	minKeywordLength = 2
	resultLimit      = 10
)

type LocationSearcher interface {
	SearchLocations(ctx context.Context, keyword string, limit int) ([]amadeus.Location, error)
}

type Airport struct {
	IataCode    string `json:"iata_code"`
	Name        string `json:"name"`
	CityName    string `json:"city_name"`
	CountryName string `json:"country_name"`
	DisplayName string `json:"display_name"`
}

func NewAirport(iata, name, city, country string) Airport {
	return Airport{
		IataCode:    iata,
		Name:        name,
		CityName:    city,
		CountryName: country,
		DisplayName: city + " - " + name + " (" + iata + ")",
	}
}

type Service struct {
	locations LocationSearcher
	cache     cache.Cache
	ttl       time.Duration
	logger    logger.Client
}

func NewService(locations LocationSearcher, c cache.Cache, ttl time.Duration, log logger.Client) *Service {
	return &Service{
		locations: locations,
		cache:     c,
		ttl:       ttl,
		logger:    log,
	}
}

// Search looks airports and cities up by keyword. It never fails: short
// keywords and upstream errors both give an empty list.
func (s *Service) Search(ctx context.Context, keyword string) []Airport {
	keyword = strings.TrimSpace(keyword)
	if len(keyword) < minKeywordLength {
		return []Airport{}
	}

	key := "airport:search:" + strings.ToLower(keyword)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var airports []Airport
		if err := json.Unmarshal([]byte(cached), &airports); err == nil {
			return airports
		}
		s.logger.Error("failed to unmarshal cached airports", logger.Field{Key: "cache_key", Value: key})
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Error("failed to read airport cache", logger.Field{Key: "cache_key", Value: key}, logger.Err(err))
	}

	locations, err := s.locations.SearchLocations(ctx, keyword, resultLimit)
	if err != nil {
		s.logger.Warn("airport search failed",
			logger.Field{Key: "keyword", Value: keyword},
			logger.Err(err),
		)
		return []Airport{}
	}

	airports := make([]Airport, 0, len(locations))
	for _, loc := range locations {
		var city, country string
		if loc.Address != nil {
			city, country = loc.Address.CityName, loc.Address.CountryName
		}
		airports = append(airports, NewAirport(loc.IataCode, loc.Name, city, country))
	}

	if b, err := json.Marshal(airports); err == nil {
		if err := s.cache.Set(ctx, key, string(b), s.ttl); err != nil {
			s.logger.Error("failed to cache airports", logger.Field{Key: "cache_key", Value: key}, logger.Err(err))
		}
	}
	return airports
}
