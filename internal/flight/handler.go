package flight

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service *Service
}

func NewFlightHandler(s *Service) *FlightHandler {
	return &FlightHandler{
		service: s,
	}
}

func (h *FlightHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/v1/flights/search", h.SearchFlightsHandler)
	router.POST("/v1/flights/refine", h.RefineFlightsHandler)
	router.GET("/v1/flights/:searchId/facets", h.FacetsHandler)
}

// SearchResponse is a search result sorted by the requested key, plus its
// first page.
type SearchResponse struct {
	FlightSearchResult
	Page *RefineResult `json:"page,omitempty"`
}

type RefineRequest struct {
	SearchID string    `json:"search_id" binding:"required"`
	View     ViewState `json:"view"`
	Page     int       `json:"page"`
}

// SearchFlightsHandler godoc
// @Summary      Search flights
// @Description  Query the aggregator and return normalized offers sorted by sort_by
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body FlightSearchRequest true "Search criteria"
// @Success      200 {object} SearchResponse
// @Failure      400 {object} SearchResponse
// @Failure      502 {object} SearchResponse
// @Router       /v1/flights/search [post]
func (h *FlightHandler) SearchFlightsHandler(c *gin.Context) {
	req := NewFlightSearchRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, NewValidationError(fmt.Sprintf("Invalid request format: %v", err)))
		return
	}

	result := h.service.SearchFlights(c.Request.Context(), req)
	if !result.Success {
		c.JSON(statusFor(result.ErrorCode), SearchResponse{FlightSearchResult: result})
		return
	}

	view := NewViewState(req.SortBy)
	result.setFlights(Sort(result.Flights, view.SortKey))
	page := Refine(result.Flights, view, 1)

	c.JSON(http.StatusOK, SearchResponse{FlightSearchResult: result, Page: &page})
}

// RefineFlightsHandler godoc
// @Summary      Refine a previous search
// @Description  Filter, sort and paginate the stored results of a search
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body RefineRequest true "View state"
// @Success      200 {object} RefineResult
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /v1/flights/refine [post]
func (h *FlightHandler) RefineFlightsHandler(c *gin.Context) {
	var req RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, NewValidationError(fmt.Sprintf("Invalid request format: %v", err)))
		return
	}

	result, err := h.service.Refine(c.Request.Context(), req.SearchID, req.View, req.Page)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FacetsHandler godoc
// @Summary      Filter options of a search
// @Tags         flights
// @Produce      json
// @Param        searchId path string true "Search ID"
// @Success      200 {object} Facets
// @Failure      404 {object} map[string]string
// @Router       /v1/flights/{searchId}/facets [get]
func (h *FlightHandler) FacetsHandler(c *gin.Context) {
	facets, err := h.service.Facets(c.Request.Context(), c.Param("searchId"))
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, facets)
}

func sendError(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
