package flight

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"flightsearch/pkg/amadeus"
	"flightsearch/pkg/cache"
	"flightsearch/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	outcomeSuccess    = "success"
	outcomeCacheHit   = "cache_hit"
	outcomeValidation = "validation"
	outcomeUpstream   = "upstream"
)

// SearchFlights validates req, queries upstream once and returns the
// normalized offers in upstream order. Failures come back inside the result;
// this method never returns an error.
//
// A successful result gets a search ID and is stored as a snapshot that
// Refine and Facets read later. Identical requests inside the cache TTL reuse
// the snapshot, and identical requests in flight share one upstream call.
func (s *Service) SearchFlights(ctx context.Context, req FlightSearchRequest) FlightSearchResult {
	req = req.normalized()

	if err := ValidateRequest(req, s.now()); err != nil {
		s.recordSearch(ctx, outcomeValidation)
		var appErr *AppError
		errors.As(err, &appErr)
		return s.failed(req, appErr.Code, appErr.Message)
	}

	key := fingerprintKey(req)
	if cached, ok := s.loadSnapshot(ctx, key); ok {
		s.logger.Info("search cache hit", logger.Field{Key: "cache_key", Value: key})
		s.recordSearch(ctx, outcomeCacheHit)
		cached.CacheHit = true
		cached.OriginalRequest = req
		return cached
	}

	v, _, shared := s.group.Do(key, func() (any, error) {
		return s.searchUpstream(context.WithoutCancel(ctx), req, key), nil
	})
	result := v.(FlightSearchResult)
	result.OriginalRequest = req
	if shared {
		s.logger.Debug("search shared with concurrent caller", logger.Field{Key: "cache_key", Value: key})
	}
	return result
}

func (s *Service) searchUpstream(ctx context.Context, req FlightSearchRequest, key string) FlightSearchResult {
	s.logger.Info("search cache miss",
		logger.Field{Key: "cache_key", Value: key},
		logger.Field{Key: "origin", Value: req.Origin},
		logger.Field{Key: "destination", Value: req.Destination},
	)

	start := time.Now()
	resp, err := s.offers.SearchFlightOffers(ctx, s.offerQuery(req))
	if s.upstream != nil {
		s.upstream.Record(ctx, float64(time.Since(start).Milliseconds()))
	}
	if err != nil {
		s.recordSearch(ctx, outcomeUpstream)
		var apiErr *amadeus.APIError
		if errors.As(err, &apiErr) {
			return s.failed(req, ErrorCodeUpstream, apiErr.Detail)
		}
		return s.failed(req, ErrorCodeUpstream, err.Error())
	}

	flights, err := NormalizeOffers(resp)
	if err != nil {
		s.logger.Error("failed to normalize offers", logger.Err(err))
		s.recordSearch(ctx, outcomeUpstream)
		return s.failed(req, ErrorCodeUpstream, err.Error())
	}

	result := FlightSearchResult{
		SearchID:        s.ids.NewID(),
		Success:         true,
		SearchTimestamp: s.now().UTC(),
		OriginalRequest: req,
	}
	result.setFlights(flights)
	facets := ExtractFacets(flights, PriceRange{})
	result.Facets = &facets

	s.storeSnapshot(ctx, result, key)
	s.recordSearch(ctx, outcomeSuccess)
	return result
}

// Refine loads the snapshot of searchID and runs the filter, sort and page
// pipeline over its full flight list.
func (s *Service) Refine(ctx context.Context, searchID string, view ViewState, requestedPage int) (RefineResult, error) {
	snap, ok := s.loadSnapshot(ctx, snapshotKey(searchID))
	if !ok {
		return RefineResult{}, NewNotFoundError("Search results expired or not found, please search again")
	}
	return Refine(snap.Flights, view, requestedPage), nil
}

func (s *Service) Facets(ctx context.Context, searchID string) (Facets, error) {
	snap, ok := s.loadSnapshot(ctx, snapshotKey(searchID))
	if !ok {
		return Facets{}, NewNotFoundError("Search results expired or not found, please search again")
	}
	if snap.Facets != nil {
		return *snap.Facets, nil
	}
	return ExtractFacets(snap.Flights, PriceRange{}), nil
}

// InvalidateCache drops the fingerprint entry so the next identical search
// goes upstream again. Snapshots already handed out stay readable.
func (s *Service) InvalidateCache(ctx context.Context, req FlightSearchRequest) error {
	key := fingerprintKey(req.normalized())
	s.logger.Info("invalidating cache", logger.Field{Key: "cache_key", Value: key})
	return s.cache.Del(ctx, key)
}

func (s *Service) failed(req FlightSearchRequest, code ErrorCode, msg string) FlightSearchResult {
	result := FlightSearchResult{
		Success:         false,
		ErrorCode:       code,
		ErrorMessage:    msg,
		SearchTimestamp: s.now().UTC(),
		OriginalRequest: req,
	}
	result.setFlights(nil)
	return result
}

func (s *Service) storeSnapshot(ctx context.Context, result FlightSearchResult, fingerprint string) {
	b, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("failed to marshal snapshot", logger.Err(err))
		return
	}

	for _, key := range []string{snapshotKey(result.SearchID), fingerprint} {
		if err := s.cache.Set(ctx, key, string(b), s.cfg.TTL); err != nil {
			s.logger.Error("failed to cache snapshot",
				logger.Field{Key: "cache_key", Value: key},
				logger.Err(err),
			)
		}
	}
}

func (s *Service) loadSnapshot(ctx context.Context, key string) (FlightSearchResult, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Error("failed to read snapshot",
				logger.Field{Key: "cache_key", Value: key},
				logger.Err(err),
			)
		}
		return FlightSearchResult{}, false
	}

	var result FlightSearchResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Error("failed to unmarshal snapshot",
			logger.Field{Key: "cache_key", Value: key},
			logger.Err(err),
		)
		return FlightSearchResult{}, false
	}
	result.setFlights(result.Flights)
	return result, true
}

func (s *Service) recordSearch(ctx context.Context, outcome string) {
	if s.searches == nil {
		return
	}
	s.searches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
