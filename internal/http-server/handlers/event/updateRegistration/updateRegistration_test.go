package updateRegistration

import (
	"bytes"
	"campusEvents/internal/http-server/handlers/event/updateRegistration/mocks"
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/services/events"
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

func TestUpdateRegistrationHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.RegistrationUpdater)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: `{"status": "Attended"}`,
			mockSetup: func(m *mocks.RegistrationUpdater) {
				m.On("SetRegistrationStatus", mock.Anything, testID, "student1", "admin1", "Attended").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","message":"registration updated"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `status=Attended`,
			mockSetup:      func(m *mocks.RegistrationUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Missing status",
			requestBody:    `{}`,
			mockSetup:      func(m *mocks.RegistrationUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Status is a required field"}`,
		},
		{
			name:           "Unknown status",
			requestBody:    `{"status": "Lost"}`,
			mockSetup:      func(m *mocks.RegistrationUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Status must be one of: Registered Attended Completed Cancelled"}`,
		},
		{
			name:        "Not the creator",
			requestBody: `{"status": "Cancelled"}`,
			mockSetup: func(m *mocks.RegistrationUpdater) {
				m.On("SetRegistrationStatus", mock.Anything, testID, "student1", "admin1", "Cancelled").Return(events.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"only the event creator can modify this event"}`,
		},
		{
			name:        "Registration not found",
			requestBody: `{"status": "Cancelled"}`,
			mockSetup: func(m *mocks.RegistrationUpdater) {
				m.On("SetRegistrationStatus", mock.Anything, testID, "student1", "admin1", "Cancelled").Return(events.ErrRegistrationNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"registration not found"}`,
		},
		{
			name:        "Internal server error",
			requestBody: `{"status": "Cancelled"}`,
			mockSetup: func(m *mocks.RegistrationUpdater) {
				m.On("SetRegistrationStatus", mock.Anything, testID, "student1", "admin1", "Cancelled").Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to update registration"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockUpdater := mocks.NewRegistrationUpdater(t)
			tc.mockSetup(mockUpdater)

			router := chi.NewRouter()
			router.Patch("/api/events/{id}/registrations/{userId}", New(logger, mockUpdater))

			req, err := http.NewRequest("PATCH", "/api/events/"+testID+"/registrations/student1", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)
			req = req.WithContext(auth.WithUser(req.Context(), auth.User{ID: "admin1", Role: auth.RoleAdmin}))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandlerWithoutChiContext(t *testing.T) {
	t.Parallel()

	handler := New(slogdiscard.NewDiscardLogger(), mocks.NewRegistrationUpdater(t))

	req, err := http.NewRequest("PATCH", "/", bytes.NewBufferString(`{"status":"Attended"}`))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "event id and user id are required")
}
