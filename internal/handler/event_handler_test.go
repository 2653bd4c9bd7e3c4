package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mightcoding/ISSAConnect/internal/domain"
	"github.com/mightcoding/ISSAConnect/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEventService struct {
	createFn func(ctx context.Context, authorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	getFn    func(ctx context.Context, id string) (*dto.EventResponse, error)
	listFn   func(ctx context.Context) ([]*dto.EventResponse, error)
	updateFn func(ctx context.Context, actorID, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	deleteFn func(ctx context.Context, actorID, id string) error
}

func (s *stubEventService) CreateEvent(ctx context.Context, authorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	return s.createFn(ctx, authorID, req)
}

func (s *stubEventService) GetEvent(ctx context.Context, id string) (*dto.EventResponse, error) {
	return s.getFn(ctx, id)
}

func (s *stubEventService) ListEvents(ctx context.Context) ([]*dto.EventResponse, error) {
	return s.listFn(ctx)
}

func (s *stubEventService) UpdateEvent(ctx context.Context, actorID, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	return s.updateFn(ctx, actorID, id, req)
}

func (s *stubEventService) DeleteEvent(ctx context.Context, actorID, id string) error {
	return s.deleteFn(ctx, actorID, id)
}

func newEventRouter(svc *stubEventService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asUser(userID))

	h := NewEventHandler(svc)
	r.POST("/events", h.Create)
	r.GET("/events", h.List)
	r.GET("/events/:id", h.Get)
	r.PUT("/events/:id", h.Update)
	r.DELETE("/events/:id", h.Delete)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestEventHandler_Create(t *testing.T) {
	t.Run("valid request returns 201", func(t *testing.T) {
		svc := &stubEventService{
			createFn: func(ctx context.Context, authorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
				assert.Equal(t, "creator-1", authorID)
				return &dto.EventResponse{ID: "evt-1", Title: req.Title}, nil
			},
		}
		r := newEventRouter(svc, "creator-1")

		w := postJSON(t, r, http.MethodPost, "/events", dto.CreateEventRequest{
			Title:       "Launch Party",
			Description: "Celebrating the release",
			StartsAt:    time.Now().Add(24 * time.Hour),
			Location:    "Rooftop",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing required fields returns 400", func(t *testing.T) {
		svc := &stubEventService{}
		r := newEventRouter(svc, "creator-1")

		w := postJSON(t, r, http.MethodPost, "/events", map[string]string{"title": "No Location"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("negative capacity rejected before the service", func(t *testing.T) {
		svc := &stubEventService{}
		r := newEventRouter(svc, "creator-1")

		capacity := -5
		w := postJSON(t, r, http.MethodPost, "/events", dto.CreateEventRequest{
			Title:       "Bad",
			Description: "desc",
			StartsAt:    time.Now().Add(24 * time.Hour),
			Location:    "Hall",
			Capacity:    &capacity,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("permission denied returns 403", func(t *testing.T) {
		svc := &stubEventService{
			createFn: func(ctx context.Context, authorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
				return nil, domain.ErrPermissionDenied
			},
		}
		r := newEventRouter(svc, "member-1")

		w := postJSON(t, r, http.MethodPost, "/events", dto.CreateEventRequest{
			Title:       "Denied",
			Description: "desc",
			StartsAt:    time.Now().Add(24 * time.Hour),
			Location:    "Hall",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestEventHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubEventService{
			getFn: func(ctx context.Context, id string) (*dto.EventResponse, error) {
				return &dto.EventResponse{ID: id, Capacity: 10, CurrentRegistrations: 4, AvailableSpots: 6}, nil
			},
		}
		r := newEventRouter(svc, "user-1")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/evt-1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing returns 404", func(t *testing.T) {
		svc := &stubEventService{
			getFn: func(ctx context.Context, id string) (*dto.EventResponse, error) {
				return nil, domain.ErrEventNotFound
			},
		}
		r := newEventRouter(svc, "user-1")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/missing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEventHandler_Delete(t *testing.T) {
	t.Run("owner delete returns 204", func(t *testing.T) {
		svc := &stubEventService{
			deleteFn: func(ctx context.Context, actorID, id string) error {
				assert.Equal(t, "creator-1", actorID)
				return nil
			},
		}
		r := newEventRouter(svc, "creator-1")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/events/evt-1", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("non-owner returns 403", func(t *testing.T) {
		svc := &stubEventService{
			deleteFn: func(ctx context.Context, actorID, id string) error {
				return domain.ErrPermissionDenied
			},
		}
		r := newEventRouter(svc, "member-1")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/events/evt-1", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
