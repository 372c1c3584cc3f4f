package registerForEvent

import (
	"campusEvents/internal/http-server/handlers/event/registerForEvent/mocks"
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/services/events"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testID = "0b7a6f2e-4f0a-4a53-8a55-4d4f5a3f8b11"

func TestRegisterForEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","message":"registered successfully"}`,
		},
		{
			name:           "Already registered",
			mockErr:        events.ErrAlreadyRegistered,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"already registered for this event"}`,
		},
		{
			name:           "Event not found",
			mockErr:        events.ErrEventNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:           "Internal server error",
			mockErr:        errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to register for event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockRegistrar := mocks.NewEventRegistrar(t)
			mockRegistrar.On("Register", mock.Anything, testID, "student1").Return(tc.mockErr)

			router := chi.NewRouter()
			router.Route("/api/events", func(r chi.Router) {
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/register", New(logger, mockRegistrar))
				})
			})

			req, err := http.NewRequest("POST", "/api/events/"+testID+"/register", nil)
			require.NoError(t, err)
			req = req.WithContext(auth.WithUser(req.Context(), auth.User{ID: "student1", Role: auth.RoleStudent}))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

// Повторная регистрация не должна проходить
func TestRegisterTwice(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	mockRegistrar := mocks.NewEventRegistrar(t)
	mockRegistrar.On("Register", mock.Anything, testID, "A").Return(nil).Once()
	mockRegistrar.On("Register", mock.Anything, testID, "A").Return(events.ErrAlreadyRegistered).Once()

	handler := New(logger, mockRegistrar)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req, err := http.NewRequest("POST", "/", nil)
		require.NoError(t, err)

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", testID)

		ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
		ctx = auth.WithUser(ctx, auth.User{ID: "A", Role: auth.RoleStudent})

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req.WithContext(ctx))
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, codes)
}

func TestResponseOK(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", nil)
	rr := httptest.NewRecorder()

	responseOK(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"OK","message":"registered successfully"}`, rr.Body.String())
}

func TestHandlerWithoutChiContext(t *testing.T) {
	t.Parallel()

	handler := New(slogdiscard.NewDiscardLogger(), mocks.NewEventRegistrar(t))

	req, err := http.NewRequest("POST", "/", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "event id is required")
}
