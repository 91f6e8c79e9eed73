package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"counter_backend/internal/feature/counter/usecase"
	"counter_backend/internal/platform/identity"
)

// mockCounterUsecase is a mock implementation of the CounterUsecase interface.
type mockCounterUsecase struct {
	TodayFunc     func(ctx context.Context, userID uint) (uint, error)
	IncrementFunc func(ctx context.Context, userID uint) (uint, error)
	ResetFunc     func(ctx context.Context, userID uint) error
}

func (m *mockCounterUsecase) Today(ctx context.Context, userID uint) (uint, error) {
	if m.TodayFunc != nil {
		return m.TodayFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockCounterUsecase) Increment(ctx context.Context, userID uint) (uint, error) {
	if m.IncrementFunc != nil {
		return m.IncrementFunc(ctx, userID)
	}
	return 1, nil
}

func (m *mockCounterUsecase) Reset(ctx context.Context, userID uint) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, userID)
	}
	return nil
}

// setupRouter wires the handler behind the identity middleware, exactly as in
// the production router.
func setupRouter(uc *mockCounterUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCounterHandler(uc)
	r := gin.New()
	id := r.Group("/")
	id.Use(identity.Required())
	{
		id.GET("/counter", h.Get)
		id.POST("/counter", h.Increment)
		id.POST("/counter/reset", h.Reset)
	}
	return r
}

func TestCounterHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		header         map[string]string
		mockTodayFunc  func(ctx context.Context, userID uint) (uint, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success: returns today's count",
			header: map[string]string{identity.HeaderUserID: "1"},
			mockTodayFunc: func(ctx context.Context, userID uint) (uint, error) {
				return 42, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"count":42}`,
		},
		{
			name:           "failure: missing x-user-id header",
			header:         nil,
			mockTodayFunc:  nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"x-user-id header required"}`,
		},
		{
			name:           "failure: non-integer x-user-id header",
			header:         map[string]string{identity.HeaderUserID: "abc"},
			mockTodayFunc:  nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"x-user-id must be a positive integer"}`,
		},
		{
			name:   "failure: unknown user",
			header: map[string]string{identity.HeaderUserID: "999"},
			mockTodayFunc: func(ctx context.Context, userID uint) (uint, error) {
				return 0, usecase.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"user not found"}`,
		},
		{
			name:   "failure: store error",
			header: map[string]string{identity.HeaderUserID: "1"},
			mockTodayFunc: func(ctx context.Context, userID uint) (uint, error) {
				return 0, errors.New("database down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to get counter"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			uc := &mockCounterUsecase{
				TodayFunc: func(ctx context.Context, userID uint) (uint, error) {
					called = true
					if tt.mockTodayFunc != nil {
						return tt.mockTodayFunc(ctx, userID)
					}
					return 0, nil
				},
			}
			router := setupRouter(uc)

			req, _ := http.NewRequest(http.MethodGet, "/counter", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			if tt.mockTodayFunc == nil {
				assert.False(t, called, "usecase must not be called when identity is rejected")
			}
		})
	}
}

func TestCounterHandler_Increment(t *testing.T) {
	t.Run("returns the post-increment count", func(t *testing.T) {
		uc := &mockCounterUsecase{
			IncrementFunc: func(ctx context.Context, userID uint) (uint, error) {
				assert.EqualValues(t, 7, userID)
				return 108, nil
			},
		}
		router := setupRouter(uc)

		req, _ := http.NewRequest(http.MethodPost, "/counter", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(identity.HeaderUserID, "7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"count":108}`, w.Body.String())
	})

	t.Run("missing identity leaves the counter untouched", func(t *testing.T) {
		called := false
		uc := &mockCounterUsecase{
			IncrementFunc: func(ctx context.Context, userID uint) (uint, error) {
				called = true
				return 0, nil
			},
		}
		router := setupRouter(uc)

		req, _ := http.NewRequest(http.MethodPost, "/counter", bytes.NewBufferString("{}"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := &mockCounterUsecase{
			IncrementFunc: func(ctx context.Context, userID uint) (uint, error) {
				return 0, usecase.ErrUserNotFound
			},
		}
		router := setupRouter(uc)

		req, _ := http.NewRequest(http.MethodPost, "/counter", bytes.NewBufferString("{}"))
		req.Header.Set(identity.HeaderUserID, "999")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCounterHandler_Reset(t *testing.T) {
	t.Run("returns a confirmation message, not the count", func(t *testing.T) {
		uc := &mockCounterUsecase{
			ResetFunc: func(ctx context.Context, userID uint) error {
				assert.EqualValues(t, 1, userID)
				return nil
			},
		}
		router := setupRouter(uc)

		req, _ := http.NewRequest(http.MethodPost, "/counter/reset", bytes.NewBufferString("{}"))
		req.Header.Set(identity.HeaderUserID, "1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Counter reset successfully"}`, w.Body.String())
	})

	t.Run("store error is a generic 500", func(t *testing.T) {
		uc := &mockCounterUsecase{
			ResetFunc: func(ctx context.Context, userID uint) error {
				return errors.New("database down")
			},
		}
		router := setupRouter(uc)

		req, _ := http.NewRequest(http.MethodPost, "/counter/reset", bytes.NewBufferString("{}"))
		req.Header.Set(identity.HeaderUserID, "1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"failed to reset counter"}`, w.Body.String())
	})
}
