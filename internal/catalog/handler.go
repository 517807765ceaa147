package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/v1/flights/classes", h.TravelClassesHandler)
	router.GET("/v1/flights/sort-options", h.SortOptionsHandler)
	router.GET("/v1/flights/time-periods", h.TimePeriodsHandler)
}

// TravelClassesHandler godoc
// @Summary      Cabin classes
// @Tags         catalog
// @Produce      json
// @Success      200 {array} Label
// @Router       /v1/flights/classes [get]
func (h *Handler) TravelClassesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.TravelClasses)
}

// SortOptionsHandler godoc
// @Summary      Sort keys
// @Tags         catalog
// @Produce      json
// @Success      200 {array} Label
// @Router       /v1/flights/sort-options [get]
func (h *Handler) SortOptionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.SortOptions)
}

// TimePeriodsHandler godoc
// @Summary      Time of day buckets
// @Tags         catalog
// @Produce      json
// @Success      200 {array} Label
// @Router       /v1/flights/time-periods [get]
func (h *Handler) TimePeriodsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.TimePeriods)
}
