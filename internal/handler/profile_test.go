package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/careertrack-api/internal/handler"
	"github.com/yourusername/careertrack-api/internal/middleware"
	"github.com/yourusername/careertrack-api/internal/model"
	"github.com/yourusername/careertrack-api/internal/service"
)

// stubProfileStore lets each test pin just the store behavior it needs.
type stubProfileStore struct {
	findByUser     func(ctx context.Context, userID string) (*model.Profile, error)
	create         func(ctx context.Context, p *model.Profile, education []model.Education) (*model.Profile, error)
	update         func(ctx context.Context, userID string, changes model.ProfileChanges, education *[]model.Education) (*model.Profile, error)
	delete         func(ctx context.Context, userID string) (bool, error)
	incrementViews func(ctx context.Context, userID string) (int, error)
}

func (s *stubProfileStore) FindByUser(ctx context.Context, userID string) (*model.Profile, error) {
	return s.findByUser(ctx, userID)
}

func (s *stubProfileStore) Create(ctx context.Context, p *model.Profile, education []model.Education) (*model.Profile, error) {
	return s.create(ctx, p, education)
}

func (s *stubProfileStore) Update(ctx context.Context, userID string, changes model.ProfileChanges, education *[]model.Education) (*model.Profile, error) {
	return s.update(ctx, userID, changes, education)
}

func (s *stubProfileStore) Delete(ctx context.Context, userID string) (bool, error) {
	return s.delete(ctx, userID)
}

func (s *stubProfileStore) IncrementViews(ctx context.Context, userID string) (int, error) {
	return s.incrementViews(ctx, userID)
}

// newProfileRouter wires the profile routes the way main does, with the
// auth middleware replaced by an identity-injecting stand-in. An empty
// uid simulates an unauthenticated request slipping past the group.
func newProfileRouter(store service.ProfileStore, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewProfileHandler(service.NewProfileService(store))

	r := gin.New()
	if uid != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeyUserID, uid)
			c.Next()
		})
	}
	r.GET("/profile", h.GetProfile)
	r.POST("/profile", h.CreateProfile)
	r.PUT("/profile", h.UpdateProfile)
	r.DELETE("/profile", h.DeleteProfile)
	r.POST("/profile/views", h.IncrementViews)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProfileHandler(t *testing.T) {
	t.Run("rejects requests without identity", func(t *testing.T) {
		r := newProfileRouter(&stubProfileStore{}, "")
		w := doJSON(t, r, http.MethodGet, "/profile", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("absent profile comes back as a 200 null", func(t *testing.T) {
		store := &stubProfileStore{
			findByUser: func(ctx context.Context, userID string) (*model.Profile, error) {
				return nil, nil
			},
		}
		r := newProfileRouter(store, "user-1")
		w := doJSON(t, r, http.MethodGet, "/profile", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
	})

	t.Run("returns the caller's aggregate", func(t *testing.T) {
		store := &stubProfileStore{
			findByUser: func(ctx context.Context, userID string) (*model.Profile, error) {
				require.Equal(t, "user-1", userID)
				return &model.Profile{UserID: userID, FirstName: "Ada"}, nil
			},
		}
		r := newProfileRouter(store, "user-1")
		w := doJSON(t, r, http.MethodGet, "/profile", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"firstName":"Ada"`)
	})
}

func TestCreateProfileHandler(t *testing.T) {
	t.Run("missing required name is a 400", func(t *testing.T) {
		r := newProfileRouter(&stubProfileStore{}, "user-1")
		w := doJSON(t, r, http.MethodPost, "/profile", `{"lastName":"Lovelace"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "firstName")
	})

	t.Run("duplicate profile is a 409", func(t *testing.T) {
		store := &stubProfileStore{
			create: func(ctx context.Context, p *model.Profile, education []model.Education) (*model.Profile, error) {
				return nil, fmt.Errorf("creating profile: %w", &pgconn.PgError{Code: "23505"})
			},
		}
		r := newProfileRouter(store, "user-1")
		w := doJSON(t, r, http.MethodPost, "/profile", `{"firstName":"Ada","lastName":"Lovelace"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")
	})

	t.Run("created aggregate comes back as 201", func(t *testing.T) {
		store := &stubProfileStore{
			create: func(ctx context.Context, p *model.Profile, education []model.Education) (*model.Profile, error) {
				return p, nil
			},
		}
		r := newProfileRouter(store, "user-1")
		w := doJSON(t, r, http.MethodPost, "/profile", `{"firstName":"Ada","lastName":"Lovelace"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"isProfileComplete":true`)
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		r := newProfileRouter(&stubProfileStore{}, "user-1")
		w := doJSON(t, r, http.MethodPost, "/profile", `{"firstName":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	t.Run("no profile yet is a 404", func(t *testing.T) {
		store := &stubProfileStore{
			findByUser: func(ctx context.Context, userID string) (*model.Profile, error) {
				return nil, nil
			},
		}
		r := newProfileRouter(store, "user-1")
		w := doJSON(t, r, http.MethodPut, "/profile", `{"bio":"updated"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("partial payload updates and returns the aggregate", func(t *testing.T) {
		store := &stubProfileStore{
			findByUser: func(ctx context.Context, userID string) (*model.Profile, error) {
				return &model.Profile{UserID: userID, FirstName: "Ada"}, nil
			},
			update: func(ctx context.Context, userID string, changes model.ProfileChanges, education *[]model.Education) (*model.Profile, error) {
				require.NotNil(t, changes.Bio)
				assert.Nil(t, changes.City)
				return &model.Profile{UserID: userID, FirstName: "Ada", Bio: *changes.Bio}, nil
			},
		}
		r := newProfileRouter(store, "user-1")
		w := doJSON(t, r, http.MethodPut, "/profile", `{"bio":"updated"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"bio":"updated"`)
	})
}

func TestDeleteProfileHandler(t *testing.T) {
	t.Run("missing profile is a 404", func(t *testing.T) {
		store := &stubProfileStore{
			delete: func(ctx context.Context, userID string) (bool, error) { return false, nil },
		}
		r := newProfileRouter(store, "user-1")
		w := doJSON(t, r, http.MethodDelete, "/profile", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete reports success", func(t *testing.T) {
		store := &stubProfileStore{
			delete: func(ctx context.Context, userID string) (bool, error) { return true, nil },
		}
		r := newProfileRouter(store, "user-1")
		w := doJSON(t, r, http.MethodDelete, "/profile", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Profile deleted successfully")
	})
}

func TestIncrementViewsHandler(t *testing.T) {
	t.Run("requires a target user id", func(t *testing.T) {
		r := newProfileRouter(&stubProfileStore{}, "")
		w := doJSON(t, r, http.MethodPost, "/profile/views", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "User ID is required")
	})

	t.Run("works without authentication", func(t *testing.T) {
		store := &stubProfileStore{
			incrementViews: func(ctx context.Context, userID string) (int, error) {
				assert.Equal(t, "user-9", userID)
				return 6, nil
			},
		}
		r := newProfileRouter(store, "")
		w := doJSON(t, r, http.MethodPost, "/profile/views", `{"userId":"user-9"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"profileViews":6`)
	})

	t.Run("unknown profile is a 404", func(t *testing.T) {
		store := &stubProfileStore{
			incrementViews: func(ctx context.Context, userID string) (int, error) {
				return 0, fmt.Errorf("incrementing profile views: %w", pgx.ErrNoRows)
			},
		}
		r := newProfileRouter(store, "")
		w := doJSON(t, r, http.MethodPost, "/profile/views", `{"userId":"ghost"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
