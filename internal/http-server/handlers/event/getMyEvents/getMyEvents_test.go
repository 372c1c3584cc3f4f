package getMyEvents

import (
	"campusEvents/internal/http-server/handlers/event/getMyEvents/mocks"
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

	req, err := http.NewRequest("GET", "/api/events/user/me", nil)
	require.NoError(t, err)

	return req.WithContext(auth.WithUser(req.Context(), auth.User{ID: "student1", Role: auth.RoleStudent}))
}

func TestGetMyEventsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	mockLister := mocks.NewUserEventsLister(t)
	mockLister.On("ListForUser", mock.Anything, "student1").Return(&events.UserEvents{
		Registered: []models.Event{{Title: "Tech Fest"}, {Title: "Hackathon"}},
		Bookmarked: []models.Event{{Title: "Music Night"}},
	}, nil)

	rr := httptest.NewRecorder()
	New(logger, mockLister).ServeHTTP(rr, newRequest(t))

	assert.Equal(t, http.StatusOK, rr.Code)

	var response MyEventsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	assert.Equal(t, "OK", response.Status)
	require.Len(t, response.Registered, 2)
	assert.Equal(t, "Tech Fest", response.Registered[0].Title)
	assert.Equal(t, "Hackathon", response.Registered[1].Title)
	require.Len(t, response.Bookmarked, 1)
	assert.Equal(t, "Music Night", response.Bookmarked[0].Title)
}

func TestEmptyLists(t *testing.T) {
	t.Parallel()

	mockLister := mocks.NewUserEventsLister(t)
	mockLister.On("ListForUser", mock.Anything, "student1").Return(&events.UserEvents{}, nil)

	rr := httptest.NewRecorder()
	New(slogdiscard.NewDiscardLogger(), mockLister).ServeHTTP(rr, newRequest(t))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"OK","registered":[],"bookmarked":[]}`, rr.Body.String())
}

func TestListerError(t *testing.T) {
	t.Parallel()

	mockLister := mocks.NewUserEventsLister(t)
	mockLister.On("ListForUser", mock.Anything, "student1").Return(nil, errors.New("database error"))

	rr := httptest.NewRecorder()
	New(slogdiscard.NewDiscardLogger(), mockLister).ServeHTTP(rr, newRequest(t))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"status":"Error","error":"failed to get user events"}`, rr.Body.String())
}
