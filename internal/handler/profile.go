package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/careertrack-api/internal/middleware"
	"github.com/yourusername/careertrack-api/internal/service"
)

// ProfileHandler exposes the profile aggregate over HTTP.
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if errors.Is(err, service.ErrProfileNotFound) {
		// Return null (not 404) so the frontend can route first-time users
		// into the create flow without treating it as an error.
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// CreateProfile handles POST /profile
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondProfileError(c, err, "Failed to create profile")
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// UpdateProfile handles PUT /profile. The payload is partial: omitted keys
// leave stored fields alone.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), userID, in)
	if err != nil {
		respondProfileError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteProfile handles DELETE /profile
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	err = h.profiles.Delete(c.Request.Context(), userID)
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to delete profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}

// IncrementViews handles POST /profile/views. The route sits outside the
// auth group: the signal names its target profile in the body, matching the
// original public "viewed" webhook shape.
func (h *ProfileHandler) IncrementViews(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	views, err := h.profiles.IncrementViews(c.Request.Context(), req.UserID)
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to increment profile views")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profileViews": views})
}

// respondProfileError maps the service error taxonomy to HTTP statuses.
// Storage failures stay generic client-side; detail goes to the log only.
func respondProfileError(c *gin.Context, err error, logMsg string) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
	case errors.Is(err, service.ErrProfileExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Profile already exists"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	default:
		log.Error().Err(err).Msg(logMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// getUserID extracts the authenticated identity from context
func getUserID(c *gin.Context) (string, error) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return "", fmt.Errorf("no authenticated user in context")
	}
	return userID, nil
}
