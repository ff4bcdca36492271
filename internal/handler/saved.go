package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/careertrack-api/internal/model"
)

// SavedOpportunityStore is the persistence surface the handler needs.
type SavedOpportunityStore interface {
	ListByUser(ctx context.Context, userID string) ([]model.SavedOpportunity, error)
	FindByJobID(ctx context.Context, userID, jobID string) (*model.SavedOpportunity, error)
	Create(ctx context.Context, saved *model.SavedOpportunity) (*model.SavedOpportunity, error)
	Delete(ctx context.Context, userID, jobID string) (bool, error)
}

// SavedOpportunityHandler manages the user's bookmarked listings.
type SavedOpportunityHandler struct {
	savedRepo SavedOpportunityStore
}

func NewSavedOpportunityHandler(savedRepo SavedOpportunityStore) *SavedOpportunityHandler {
	return &SavedOpportunityHandler{savedRepo: savedRepo}
}

// List handles GET /saved-opportunities
func (h *SavedOpportunityHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	saved, err := h.savedRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list saved opportunities")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if saved == nil {
		saved = []model.SavedOpportunity{}
	}

	c.JSON(http.StatusOK, saved)
}

// Create handles POST /saved-opportunities. Saving an already-saved listing
// returns the existing row instead of duplicating it.
func (h *SavedOpportunityHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req struct {
		JobID   string `json:"jobId" binding:"required"`
		Title   string `json:"title" binding:"required"`
		Company string `json:"company" binding:"required"`
		Type    string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	existing, err := h.savedRepo.FindByJobID(c.Request.Context(), userID, req.JobID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check saved opportunity")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, existing)
		return
	}

	created, err := h.savedRepo.Create(c.Request.Context(), &model.SavedOpportunity{
		UserID:  userID,
		JobID:   req.JobID,
		Title:   req.Title,
		Company: req.Company,
		Type:    req.Type,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to save opportunity")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Delete handles DELETE /saved-opportunities/:jobId
func (h *SavedOpportunityHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	deleted, err := h.savedRepo.Delete(c.Request.Context(), userID, c.Param("jobId"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to delete saved opportunity")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved opportunity not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
