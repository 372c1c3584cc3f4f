package updateRegistration

import (
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/services/events"
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Registered Attended Completed Cancelled"`
}

type StatusResponse struct {
	response.Response
	Message string `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrationUpdater
type RegistrationUpdater interface {
	SetRegistrationStatus(ctx context.Context, eventID, userID, requesterID, status string) error
}

// New lets the event creator move a registration between statuses, e.g. mark
// attendance or cancel it. The registration itself is never removed.
func New(log *slog.Logger, updater RegistrationUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateRegistration.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		userID := chi.URLParam(r, "userId")
		if eventID == "" || userID == "" {
			log.Error("event id and user id are required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id and user id are required"))
			return
		}

		log = log.With(slog.String("event_id", eventID), slog.String("user_id", userID))

		var req StatusRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		err = updater.SetRegistrationStatus(r.Context(), eventID, userID, auth.UserID(r.Context()), req.Status)
		if err != nil {
			log.Error("failed to update registration", sl.Err(err))

			switch {
			case errors.Is(err, events.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, events.ErrRegistrationNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("registration not found"))
			case errors.Is(err, events.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(events.ErrForbidden.Error()))
			case errors.Is(err, events.ErrValidation):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update registration"))
			}
			return
		}

		log.Info("registration status updated", slog.String("status", req.Status))

		responseOK(w, r)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, StatusResponse{
		Response: response.OK(),
		Message:  "registration updated",
	})
}
