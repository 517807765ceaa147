package airport

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/v1/airports", h.SearchAirportsHandler)
}

// SearchAirportsHandler godoc
// @Summary      Airport autocomplete
// @Description  Airports and cities matching a keyword of at least two characters
// @Tags         airports
// @Produce      json
// @Param        keyword query string true "Keyword"
// @Success      200 {array} Airport
// @Router       /v1/airports [get]
func (h *Handler) SearchAirportsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Search(c.Request.Context(), c.Query("keyword")))
}
