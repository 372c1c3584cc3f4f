package registerForEvent

import (
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/services/events"
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type RegisterResponse struct {
	response.Response
	Message string `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventRegistrar
type EventRegistrar interface {
	Register(ctx context.Context, eventID, userID string) error
}

// New registers the authenticated caller for the event. The caller is taken
// from the token, never from the request body.
func New(log *slog.Logger, registrar EventRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.registerForEvent.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		userID := auth.UserID(r.Context())

		log = log.With(slog.String("event_id", eventID), slog.String("user_id", userID))

		err := registrar.Register(r.Context(), eventID, userID)
		if err != nil {
			switch {
			case errors.Is(err, events.ErrAlreadyRegistered):
				log.Info("user already registered")
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(events.ErrAlreadyRegistered.Error()))
			case errors.Is(err, events.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			default:
				log.Error("failed to register for event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to register for event"))
			}
			return
		}

		log.Info("registered for event successfully")

		responseOK(w, r)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, RegisterResponse{
		Response: response.OK(),
		Message:  "registered successfully",
	})
}
