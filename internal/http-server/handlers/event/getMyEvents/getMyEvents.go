package getMyEvents

import (
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/services/events"
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type MyEventsResponse struct {
	response.Response
	Registered []models.Event `json:"registered"`
	Bookmarked []models.Event `json:"bookmarked"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserEventsLister
type UserEventsLister interface {
	ListForUser(ctx context.Context, userID string) (*events.UserEvents, error)
}

func New(log *slog.Logger, lister UserEventsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getMyEvents.New"

		userID := auth.UserID(r.Context())

		log := log.With(slog.String("op", op), slog.String("user_id", userID))

		mine, err := lister.ListForUser(r.Context(), userID)
		if err != nil {
			log.Error("failed to get user events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get user events"))
			return
		}

		log.Info("user events retrieved",
			slog.Int("registered", len(mine.Registered)),
			slog.Int("bookmarked", len(mine.Bookmarked)),
		)

		responseOK(w, r, mine)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, mine *events.UserEvents) {
	resp := MyEventsResponse{
		Response:   response.OK(),
		Registered: mine.Registered,
		Bookmarked: mine.Bookmarked,
	}

	if resp.Registered == nil {
		resp.Registered = []models.Event{}
	}
	if resp.Bookmarked == nil {
		resp.Bookmarked = []models.Event{}
	}

	render.JSON(w, r, resp)
}
