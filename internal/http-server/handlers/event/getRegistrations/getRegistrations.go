package getRegistrations

import (
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/services/events"
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type RegistrationsResponse struct {
	response.Response
	Registrations []models.Registration `json:"registrations"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrationsGetter
type RegistrationsGetter interface {
	Registrations(ctx context.Context, eventID, requesterID string) ([]models.Registration, error)
}

func New(log *slog.Logger, getter RegistrationsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getRegistrations.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		registrations, err := getter.Registrations(r.Context(), eventID, auth.UserID(r.Context()))
		if err != nil {
			switch {
			case errors.Is(err, events.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, events.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(events.ErrForbidden.Error()))
			default:
				log.Error("failed to get registrations", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to get registrations"))
			}
			return
		}

		log.Info("registrations retrieved", slog.Int("count", len(registrations)))

		responseOK(w, r, registrations)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, registrations []models.Registration) {
	if registrations == nil {
		registrations = []models.Registration{}
	}

	render.JSON(w, r, RegistrationsResponse{
		Response:      response.OK(),
		Registrations: registrations,
	})
}
