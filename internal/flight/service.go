package flight

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"flightsearch/pkg/amadeus"
	"flightsearch/pkg/cache"
	"flightsearch/pkg/idgen"
	"flightsearch/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"
)

type OfferSearcher interface {
	SearchFlightOffers(ctx context.Context, q amadeus.OfferQuery) (*amadeus.FlightOffersResponse, error)
}

type SearchConfig struct {
	CurrencyCode string
	MaxResults   int
	TTL          time.Duration
}

type Service struct {
	offers OfferSearcher
	cache  cache.Cache
	ids    idgen.Generator
	cfg    SearchConfig
	logger logger.Client
	now    func() time.Time

	group    singleflight.Group
	searches metric.Int64Counter
	upstream metric.Float64Histogram
}

func NewService(offers OfferSearcher, c cache.Cache, ids idgen.Generator, cfg SearchConfig, log logger.Client) *Service {
	meter := otel.Meter("flightsearch/flight")

	searches, err := meter.Int64Counter("flight.searches",
		metric.WithDescription("Flight searches by outcome"))
	if err != nil {
		log.Warn("failed to create search counter", logger.Err(err))
	}
	upstream, err := meter.Float64Histogram("flight.upstream.duration",
		metric.WithDescription("Upstream flight offers latency"),
		metric.WithUnit("ms"))
	if err != nil {
		log.Warn("failed to create upstream histogram", logger.Err(err))
	}

	return &Service{
		offers:   offers,
		cache:    c,
		ids:      ids,
		cfg:      cfg,
		logger:   log,
		now:      time.Now,
		searches: searches,
		upstream: upstream,
	}
}

// ValidateRequest checks a normalized request against today's date. The
// returned error is always an *AppError with a message fit for end users.
func ValidateRequest(req FlightSearchRequest, now time.Time) error {
	if req.Origin == "" {
		return NewValidationError("Origin airport code is required")
	}
	if req.Destination == "" {
		return NewValidationError("Destination airport code is required")
	}

	departure, err := time.Parse(dateLayout, req.DepartureDate)
	if err != nil {
		return NewValidationError("Departure date must use the YYYY-MM-DD format")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if departure.Before(today) {
		return NewValidationError("Departure date cannot be in the past")
	}

	if req.ReturnDate != "" {
		ret, err := time.Parse(dateLayout, req.ReturnDate)
		if err != nil {
			return NewValidationError("Return date must use the YYYY-MM-DD format")
		}
		if ret.Before(departure) {
			return NewValidationError("Return date cannot be before the departure date")
		}
	}

	if req.Adults < 1 {
		return NewValidationError("At least one adult passenger is required")
	}
	return nil
}

// fingerprintKey identifies a search by everything that reaches upstream.
// The sort key is left out since it does not change the offers.
func fingerprintKey(req FlightSearchRequest) string {
	key := fmt.Sprintf("flight:%s:%s:%s:%s:%d:%d:%d:%s",
		req.Origin,
		req.Destination,
		req.DepartureDate,
		req.ReturnDate,
		req.Adults,
		req.Children,
		req.Infants,
		req.TravelClass,
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("flight:search:%x", hash[:16])
}

func snapshotKey(searchID string) string {
	return "flight:search:id:" + searchID
}

func (s *Service) offerQuery(req FlightSearchRequest) amadeus.OfferQuery {
	return amadeus.OfferQuery{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
		TravelClass:   req.TravelClass,
		CurrencyCode:  s.cfg.CurrencyCode,
		Max:           s.cfg.MaxResults,
	}
}
