package getProfile

import (
	"campusEvents/internal/http-server/handlers/profile/getProfile/mocks"
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/models"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetProfileHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	updatedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		profile        *models.Profile
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			profile: &models.Profile{
				UserID:            "student1",
				Name:              "Asha",
				Skills:            []string{"go"},
				Interests:         []string{},
				ProfileCompletion: 14,
				UpdatedAt:         updatedAt,
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","profile":{
				"userId":"student1","name":"Asha","gender":"","phone":"","college":"","degree":"",
				"branch":"","year":"","bio":"","skills":["go"],"interests":[],
				"profileCompletion":14,"updatedAt":"2025-03-10T12:00:00Z"
			}}`,
		},
		{
			name:           "Storage error",
			mockErr:        errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get profile"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewProfileGetter(t)
			mockGetter.On("Get", mock.Anything, "student1").Return(tc.profile, tc.mockErr)

			req, err := http.NewRequest("GET", "/api/profile", nil)
			require.NoError(t, err)
			req = req.WithContext(auth.WithUser(req.Context(), auth.User{ID: "student1", Role: auth.RoleStudent}))

			rr := httptest.NewRecorder()
			New(logger, mockGetter).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
