package flight

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flightsearch/pkg/amadeus"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MockOfferSearcher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	offers := new(MockOfferSearcher)
	s, _ := newTestService(offers)

	router := gin.New()
	NewFlightHandler(s).RegisterRoutes(router)
	return router, offers
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFlightHandler_Search(t *testing.T) {
	router, offers := newTestRouter(t)
	offers.On("SearchFlightOffers", mock.Anything, mock.Anything).Return(offersResponse(), nil)

	w := doJSON(router, http.MethodPost, "/v1/flights/search", map[string]any{
		"origin":         "cdg",
		"destination":    "jfk",
		"departure_date": "2026-11-20",
		"sort_by":        "price_desc",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.SearchID)
	assert.Equal(t, []string{"1", "2"}, ids(resp.Flights), "sorted by price_desc")
	assert.Equal(t, 1, resp.OriginalRequest.Adults, "adults default to one")
	assert.Equal(t, "ECONOMY", resp.OriginalRequest.TravelClass)
	require.NotNil(t, resp.Page)
	assert.Equal(t, SortByPriceDesc, resp.Page.View.SortKey)
	assert.Equal(t, 2, resp.Page.Meta.TotalCount)
	require.NotNil(t, resp.Facets)
}

func TestFlightHandler_SearchErrors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		router, offers := newTestRouter(t)

		w := doJSON(router, http.MethodPost, "/v1/flights/search", map[string]any{
			"origin":         "CDG",
			"departure_date": "2026-11-20",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, ErrorCodeValidation, resp.ErrorCode)
		assert.Equal(t, "Destination airport code is required", resp.ErrorMessage)
		assert.Nil(t, resp.Page)
		offers.AssertNotCalled(t, "SearchFlightOffers", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(router, http.MethodPost, "/v1/flights/search", `{"origin":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), string(ErrorCodeValidation))
	})

	t.Run("upstream", func(t *testing.T) {
		router, offers := newTestRouter(t)
		offers.On("SearchFlightOffers", mock.Anything, mock.Anything).
			Return(nil, &amadeus.APIError{Detail: "Quota exceeded"})

		w := doJSON(router, http.MethodPost, "/v1/flights/search", validRequest())

		assert.Equal(t, http.StatusBadGateway, w.Code)
		var resp SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ErrorCodeUpstream, resp.ErrorCode)
		assert.Equal(t, "Quota exceeded", resp.ErrorMessage)
	})
}

func TestFlightHandler_RefineAndFacets(t *testing.T) {
	router, offers := newTestRouter(t)
	offers.On("SearchFlightOffers", mock.Anything, mock.Anything).Return(offersResponse(), nil)

	w := doJSON(router, http.MethodPost, "/v1/flights/search", validRequest())
	require.Equal(t, http.StatusOK, w.Code)
	var search SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &search))

	t.Run("refine", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/v1/flights/refine", map[string]any{
			"search_id": search.SearchID,
			"view": map[string]any{
				"filters":  map[string]any{"flight_type": "withStops", "max_price": "500"},
				"sort_key": "duration",
				"page":     1,
			},
			"page": 1,
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var res RefineResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, []string{"1"}, ids(res.Items))
		assert.Equal(t, SortByDuration, res.View.SortKey)
	})

	t.Run("refine unknown search", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/v1/flights/refine", map[string]any{"search_id": "gone"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), string(ErrorCodeNotFound))
	})

	t.Run("refine without search id", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/v1/flights/refine", map[string]any{"page": 2})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("facets", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/v1/flights/"+search.SearchID+"/facets", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var facets Facets
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &facets))
		assert.Equal(t, []int{0, 1}, facets.StopCounts)
	})
}
