package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/careertrack-api/internal/handler"
	"github.com/yourusername/careertrack-api/internal/middleware"
	"github.com/yourusername/careertrack-api/internal/model"
)

type stubSavedStore struct {
	listByUser  func(ctx context.Context, userID string) ([]model.SavedOpportunity, error)
	findByJobID func(ctx context.Context, userID, jobID string) (*model.SavedOpportunity, error)
	create      func(ctx context.Context, saved *model.SavedOpportunity) (*model.SavedOpportunity, error)
	delete      func(ctx context.Context, userID, jobID string) (bool, error)
}

func (s *stubSavedStore) ListByUser(ctx context.Context, userID string) ([]model.SavedOpportunity, error) {
	return s.listByUser(ctx, userID)
}

func (s *stubSavedStore) FindByJobID(ctx context.Context, userID, jobID string) (*model.SavedOpportunity, error) {
	return s.findByJobID(ctx, userID, jobID)
}

func (s *stubSavedStore) Create(ctx context.Context, saved *model.SavedOpportunity) (*model.SavedOpportunity, error) {
	return s.create(ctx, saved)
}

func (s *stubSavedStore) Delete(ctx context.Context, userID, jobID string) (bool, error) {
	return s.delete(ctx, userID, jobID)
}

func newSavedRouter(store handler.SavedOpportunityStore, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewSavedOpportunityHandler(store)

	r := gin.New()
	if uid != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeyUserID, uid)
			c.Next()
		})
	}
	r.GET("/saved-opportunities", h.List)
	r.POST("/saved-opportunities", h.Create)
	r.DELETE("/saved-opportunities/:jobId", h.Delete)
	return r
}

func TestListSavedOpportunities(t *testing.T) {
	t.Run("empty list is an empty array", func(t *testing.T) {
		store := &stubSavedStore{
			listByUser: func(ctx context.Context, userID string) ([]model.SavedOpportunity, error) {
				return nil, nil
			},
		}
		r := newSavedRouter(store, "user-1")
		w := doJSON(t, r, http.MethodGet, "/saved-opportunities", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestSaveOpportunity(t *testing.T) {
	payload := `{"jobId":"job-42","title":"Backend Intern","company":"Acme","type":"Internship"}`

	t.Run("requires the listing fields", func(t *testing.T) {
		r := newSavedRouter(&stubSavedStore{}, "user-1")
		w := doJSON(t, r, http.MethodPost, "/saved-opportunities", `{"jobId":"job-42"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("first save creates the bookmark", func(t *testing.T) {
		var got *model.SavedOpportunity
		store := &stubSavedStore{
			findByJobID: func(ctx context.Context, userID, jobID string) (*model.SavedOpportunity, error) {
				return nil, nil
			},
			create: func(ctx context.Context, saved *model.SavedOpportunity) (*model.SavedOpportunity, error) {
				got = saved
				return saved, nil
			},
		}
		r := newSavedRouter(store, "user-1")
		w := doJSON(t, r, http.MethodPost, "/saved-opportunities", payload)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, got)
		assert.Equal(t, "user-1", got.UserID)
		assert.Equal(t, "job-42", got.JobID)
	})

	t.Run("saving twice returns the existing bookmark", func(t *testing.T) {
		existing := &model.SavedOpportunity{UserID: "user-1", JobID: "job-42", Title: "Backend Intern"}
		store := &stubSavedStore{
			findByJobID: func(ctx context.Context, userID, jobID string) (*model.SavedOpportunity, error) {
				return existing, nil
			},
			create: func(ctx context.Context, saved *model.SavedOpportunity) (*model.SavedOpportunity, error) {
				t.Fatal("create must not run for an already-saved listing")
				return nil, nil
			},
		}
		r := newSavedRouter(store, "user-1")
		w := doJSON(t, r, http.MethodPost, "/saved-opportunities", payload)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "job-42")
	})
}

func TestDeleteSavedOpportunity(t *testing.T) {
	t.Run("unknown bookmark is a 404", func(t *testing.T) {
		store := &stubSavedStore{
			delete: func(ctx context.Context, userID, jobID string) (bool, error) { return false, nil },
		}
		r := newSavedRouter(store, "user-1")
		w := doJSON(t, r, http.MethodDelete, "/saved-opportunities/job-42", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete scopes to the caller and job id", func(t *testing.T) {
		store := &stubSavedStore{
			delete: func(ctx context.Context, userID, jobID string) (bool, error) {
				assert.Equal(t, "user-1", userID)
				assert.Equal(t, "job-42", jobID)
				return true, nil
			},
		}
		r := newSavedRouter(store, "user-1")
		w := doJSON(t, r, http.MethodDelete, "/saved-opportunities/job-42", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"deleted":true`)
	})
}
