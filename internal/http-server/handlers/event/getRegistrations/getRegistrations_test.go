package getRegistrations

import (
	"campusEvents/internal/http-server/handlers/event/getRegistrations/mocks"
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/models"
	"campusEvents/internal/services/events"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testID = "0b7a6f2e-4f0a-4a53-8a55-4d4f5a3f8b11"

func TestGetRegistrationsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	registeredAt := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		records        []models.Registration
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			records: []models.Registration{
				{UserID: "A", EventID: testID, Status: models.RegistrationRegistered, RegistrationDate: registeredAt},
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","registrations":[
				{"userId":"A","eventId":"` + testID + `","status":"Registered","registrationDate":"2025-03-10T12:30:00Z"}
			]}`,
		},
		{
			name:           "No registrations",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","registrations":[]}`,
		},
		{
			name:           "Not the creator",
			mockErr:        events.ErrForbidden,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"only the event creator can modify this event"}`,
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
			expectedBody:   `{"status":"Error","error":"failed to get registrations"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewRegistrationsGetter(t)
			mockGetter.On("Registrations", mock.Anything, testID, "admin1").Return(tc.records, tc.mockErr)

			router := chi.NewRouter()
			router.Get("/api/events/{id}/registrations", New(logger, mockGetter))

			req, err := http.NewRequest("GET", "/api/events/"+testID+"/registrations", nil)
			require.NoError(t, err)
			req = req.WithContext(auth.WithUser(req.Context(), auth.User{ID: "admin1", Role: auth.RoleAdmin}))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
