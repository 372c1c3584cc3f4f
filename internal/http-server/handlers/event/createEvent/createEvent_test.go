package createEvent

import (
	"bytes"
	"campusEvents/internal/http-server/handlers/event/createEvent/mocks"
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/models"
	"campusEvents/internal/services/events"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testID = "0b7a6f2e-4f0a-4a53-8a55-4d4f5a3f8b11"

func newRequest(t *testing.T, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequest("POST", "/api/events", bytes.NewBufferString(body))
	require.NoError(t, err)

	return req.WithContext(auth.WithUser(req.Context(), auth.User{ID: "admin1", Role: auth.RoleAdmin}))
}

func TestCreateEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testTime := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	created := &models.Event{
		ID:        testID,
		Title:     "Tech Fest",
		Date:      testTime,
		CreatedBy: "admin1",
	}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.EventCreator)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Success",
			requestBody: `{
				"title": "Tech Fest",
				"date": "2025-03-15T10:00:00Z",
				"category": "Tech"
			}`,
			mockSetup: func(m *mocks.EventCreator) {
				in := events.NewEvent{Title: "Tech Fest", Date: testTime, Category: "Tech"}
				m.On("Create", mock.Anything, "admin1", in).Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body string) {
				var response EventResponse
				require.NoError(t, json.Unmarshal([]byte(body), &response))

				assert.Equal(t, "OK", response.Status)
				require.NotNil(t, response.Event)
				assert.Equal(t, testID, response.Event.ID)
				assert.Equal(t, "admin1", response.Event.CreatedBy)
			},
		},
		{
			name: "Paid event",
			requestBody: `{
				"title": "Workshop",
				"date": "2025-03-15T10:00:00Z",
				"mode": "online",
				"feeType": "paid",
				"fee": "149.50",
				"visibility": "private"
			}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("Create", mock.Anything, "admin1", mock.MatchedBy(func(in events.NewEvent) bool {
					return in.Title == "Workshop" &&
						in.Mode == models.ModeOnline &&
						in.FeeType == models.FeeTypePaid &&
						in.Fee.Equal(decimal.RequireFromString("149.5")) &&
						in.Visibility == models.VisibilityPrivate
				})).Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `invalid json`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Missing title",
			requestBody:    `{"date": "2025-03-15T10:00:00Z"}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Title is a required field"}`,
		},
		{
			name:           "Missing date",
			requestBody:    `{"title": "Tech Fest"}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Date is a required field"}`,
		},
		{
			name:           "Invalid date format",
			requestBody:    `{"title": "Tech Fest", "date": "next friday"}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Unknown mode",
			requestBody:    `{"title": "Tech Fest", "date": "2025-03-15T10:00:00Z", "mode": "hybrid"}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Mode must be one of: online offline"}`,
		},
		{
			name:        "Rejected by service",
			requestBody: `{"title": "  ", "date": "2025-03-15T10:00:00Z"}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("Create", mock.Anything, "admin1", mock.Anything).
					Return(nil, fmt.Errorf("%w: title is required", events.ErrValidation))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event: title is required"}`,
		},
		{
			name:        "Internal server error",
			requestBody: `{"title": "Tech Fest", "date": "2025-03-15T10:00:00Z"}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("Create", mock.Anything, "admin1", mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to add event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockCreator := mocks.NewEventCreator(t)
			tc.mockSetup(mockCreator)

			handler := New(logger, mockCreator)

			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, newRequest(t, tc.requestBody))

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	mockCreator := mocks.NewEventCreator(t)
	handler := New(logger, mockCreator)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(t, `{}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, `"status":"Error"`)
	assert.Contains(t, body, "field Title is a required field")
	assert.Contains(t, body, "field Date is a required field")
}

func TestResponseOK(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", nil)
	rr := httptest.NewRecorder()

	responseOK(rr, req, &models.Event{ID: testID, Title: "Tech Fest"})

	var actualResponse EventResponse
	err := json.Unmarshal(rr.Body.Bytes(), &actualResponse)
	require.NoError(t, err)

	assert.Equal(t, "OK", actualResponse.Status)
	assert.Equal(t, "", actualResponse.Error)
	require.NotNil(t, actualResponse.Event)
	assert.Equal(t, testID, actualResponse.Event.ID)
}
