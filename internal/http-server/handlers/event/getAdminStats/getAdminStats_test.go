package getAdminStats

import (
	"campusEvents/internal/http-server/handlers/event/getAdminStats/mocks"
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/models"
	"campusEvents/internal/services/events"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()

	req, err := http.NewRequest("GET", "/api/events/admin/stats", nil)
	require.NoError(t, err)

	return req.WithContext(auth.WithUser(req.Context(), auth.User{ID: "admin1", Role: auth.RoleAdmin}))
}

func TestGetAdminStatsHandler(t *testing.T) {
	t.Parallel()

	mockStats := mocks.NewStatsGetter(t)
	mockStats.On("AdminStats", mock.Anything, "admin1").Return(&events.AdminStats{
		TotalEvents:        2,
		TotalRegistrations: 4,
		Events: []models.Event{
			{Title: "First", RegisteredUsers: []string{"A", "B", "C"}},
			{Title: "Second", RegisteredUsers: []string{"A"}},
		},
	}, nil)

	rr := httptest.NewRecorder()
	New(slogdiscard.NewDiscardLogger(), mockStats).ServeHTTP(rr, newRequest(t))

	assert.Equal(t, http.StatusOK, rr.Code)

	var response StatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	assert.Equal(t, "OK", response.Status)
	assert.Equal(t, 2, response.TotalEvents)
	assert.Equal(t, 4, response.TotalRegistrations)
	require.Len(t, response.Events, 2)
	assert.Equal(t, "First", response.Events[0].Title)
}

func TestNoEvents(t *testing.T) {
	t.Parallel()

	mockStats := mocks.NewStatsGetter(t)
	mockStats.On("AdminStats", mock.Anything, "admin1").Return(&events.AdminStats{}, nil)

	rr := httptest.NewRecorder()
	New(slogdiscard.NewDiscardLogger(), mockStats).ServeHTTP(rr, newRequest(t))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"OK","totalEvents":0,"totalRegistrations":0,"events":[]}`, rr.Body.String())
}

func TestStatsError(t *testing.T) {
	t.Parallel()

	mockStats := mocks.NewStatsGetter(t)
	mockStats.On("AdminStats", mock.Anything, "admin1").Return(nil, errors.New("database error"))

	rr := httptest.NewRecorder()
	New(slogdiscard.NewDiscardLogger(), mockStats).ServeHTTP(rr, newRequest(t))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"status":"Error","error":"failed to get admin stats"}`, rr.Body.String())
}
