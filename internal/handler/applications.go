package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/careertrack-api/internal/model"
)

// ApplicationStore is the persistence surface the handler needs.
type ApplicationStore interface {
	ListByUser(ctx context.Context, userID string) ([]model.Application, error)
	Create(ctx context.Context, app *model.Application) (*model.Application, error)
}

// ApplicationHandler tracks the user's job/internship applications.
type ApplicationHandler struct {
	appRepo ApplicationStore
}

func NewApplicationHandler(appRepo ApplicationStore) *ApplicationHandler {
	return &ApplicationHandler{appRepo: appRepo}
}

// List handles GET /applications
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	apps, err := h.appRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list applications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if apps == nil {
		apps = []model.Application{}
	}

	c.JSON(http.StatusOK, apps)
}

// Create handles POST /applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req struct {
		Title         string  `json:"title" binding:"required"`
		Company       string  `json:"company" binding:"required"`
		Type          string  `json:"type" binding:"required"`
		Status        string  `json:"status"`
		Location      string  `json:"location"`
		SalaryRange   string  `json:"salaryRange"`
		Deadline      *string `json:"deadline"`
		InterviewDate *string `json:"interviewDate"`
		Notes         string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	status := req.Status
	if status == "" {
		status = "Applied"
	}

	app := &model.Application{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Type:        req.Type,
		Status:      status,
		Location:    req.Location,
		SalaryRange: req.SalaryRange,
		Notes:       req.Notes,
	}

	if app.Deadline, err = parseOptionalDate(req.Deadline); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline date"})
		return
	}
	if app.InterviewDate, err = parseOptionalDate(req.InterviewDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interview date"})
		return
	}

	created, err := h.appRepo.Create(c.Request.Context(), app)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// parseOptionalDate coerces an optional date string; nil or empty means
// "not set", anything else must parse.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		t, err = time.Parse("2006-01-02", *s)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
