package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"flightsearch/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	flightOffersPath = "/v2/shopping/flight-offers"
	locationsPath    = "/v1/reference-data/locations"
)

// APIError is a non-success answer from the aggregator. Detail holds the first
// machine-reported error detail, or the raw body when it could not be parsed.
type APIError struct {
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// OfferQuery carries everything sent on a flight-offers search. Dates are
// YYYY-MM-DD; an empty ReturnDate means one-way.
type OfferQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Children      int
	Infants       int
	TravelClass   string
	CurrencyCode  string
	Max           int
}

func (q OfferQuery) values() url.Values {
	v := url.Values{}
	v.Set("originLocationCode", q.Origin)
	v.Set("destinationLocationCode", q.Destination)
	v.Set("departureDate", q.DepartureDate)
	v.Set("adults", strconv.Itoa(q.Adults))
	if q.Children > 0 {
		v.Set("children", strconv.Itoa(q.Children))
	}
	if q.Infants > 0 {
		v.Set("infants", strconv.Itoa(q.Infants))
	}
	if q.ReturnDate != "" {
		v.Set("returnDate", q.ReturnDate)
	}
	if q.TravelClass != "" {
		v.Set("travelClass", q.TravelClass)
	}
	if q.CurrencyCode != "" {
		v.Set("currencyCode", q.CurrencyCode)
	}
	if q.Max > 0 {
		v.Set("max", strconv.Itoa(q.Max))
	}
	return v
}

type Client struct {
	fetcher Fetcher
	baseURL string
	logger  logger.Client
	tracer  trace.Tracer
}

func NewClient(fetcher Fetcher, baseURL string, log logger.Client) *Client {
	return &Client{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
		tracer:  otel.Tracer("flightsearch/amadeus"),
	}
}

func (c *Client) SearchFlightOffers(ctx context.Context, q OfferQuery) (*FlightOffersResponse, error) {
	ctx, span := c.tracer.Start(ctx, "amadeus.SearchFlightOffers", trace.WithAttributes(
		attribute.String("flight.origin", q.Origin),
		attribute.String("flight.destination", q.Destination),
		attribute.String("flight.departure_date", q.DepartureDate),
	))
	defer span.End()

	endpoint := c.baseURL + flightOffersPath + "?" + q.values().Encode()

	var resp FlightOffersResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("flight offers search failed",
			logger.Field{Key: "origin", Value: q.Origin},
			logger.Field{Key: "destination", Value: q.Destination},
			logger.Err(err),
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("flight.offers", len(resp.Data)))
	return &resp, nil
}

func (c *Client) SearchLocations(ctx context.Context, keyword string, limit int) ([]Location, error) {
	ctx, span := c.tracer.Start(ctx, "amadeus.SearchLocations", trace.WithAttributes(
		attribute.String("location.keyword", keyword),
	))
	defer span.End()

	v := url.Values{}
	v.Set("subType", "AIRPORT,CITY")
	v.Set("keyword", keyword)
	v.Set("page[limit]", strconv.Itoa(limit))
	endpoint := c.baseURL + locationsPath + "?" + v.Encode()

	var resp LocationsResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	ok, body, err := c.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		return err
	}
	if !ok {
		return newAPIError(body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}

func newAPIError(body []byte) *APIError {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		first := parsed.Errors[0]
		if first.Detail != "" {
			return &APIError{Detail: first.Detail}
		}
		if first.Title != "" {
			return &APIError{Detail: first.Title}
		}
	}
	return &APIError{Detail: string(body)}
}
