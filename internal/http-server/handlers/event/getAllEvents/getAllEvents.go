package getAllEvents

import (
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/services/events"
	"context"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type EventsResponse struct {
	response.Response
	Events []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventLister
type EventLister interface {
	List(ctx context.Context, q events.Query, viewerID string) ([]models.Event, error)
}

// New serves GET /api/events?category=&status=&search=.
func New(log *slog.Logger, lister EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		values := r.URL.Query()
		q := events.Query{
			Category: values.Get("category"),
			Status:   values.Get("status"),
			Search:   values.Get("search"),
		}

		list, err := lister.List(r.Context(), q, auth.UserID(r.Context()))
		if err != nil {
			if errors.Is(err, events.ErrInvalidStatus) {
				log.Info("invalid status filter", slog.String("status", q.Status))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
				return
			}

			log.Error("failed to get events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))
			return
		}

		log.Info("events retrieved successfully", slog.Int("count", len(list)))

		responseOK(w, r, list)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, list []models.Event) {
	if list == nil {
		list = []models.Event{}
	}

	render.JSON(w, r, EventsResponse{
		Response: response.OK(),
		Events:   list,
	})
}
