package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/careertrack-api/internal/service"
)

// OpportunityHandler proxies external job listing searches.
type OpportunityHandler struct {
	jsearch *service.JSearchClient
}

func NewOpportunityHandler(jsearch *service.JSearchClient) *OpportunityHandler {
	return &OpportunityHandler{jsearch: jsearch}
}

// Search handles GET /opportunities. The upstream response is relayed
// verbatim; this service has no opinion on its shape.
func (h *OpportunityHandler) Search(c *gin.Context) {
	query := c.DefaultQuery("search", "software")
	page := c.DefaultQuery("page", "1")
	numPages := c.DefaultQuery("num_pages", "1")

	body, err := h.jsearch.Search(c.Request.Context(), query, page, numPages)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch opportunities")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data"})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
