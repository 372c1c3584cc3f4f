package updateEvent

import (
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/services/events"
	"campusEvents/internal/storage"
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"log/slog"
	"net/http"
	"time"
)

// UpdateRequest is a partial update: absent fields are left as they are.
// createdBy is not accepted.
type UpdateRequest struct {
	Title              *string          `json:"title" validate:"omitnil,min=1"`
	Description        *string          `json:"description"`
	Date               *time.Time       `json:"date"`
	Time               *string          `json:"time"`
	Venue              *string          `json:"venue"`
	Category           *string          `json:"category"`
	Mode               *string          `json:"mode" validate:"omitempty,oneof=online offline"`
	FeeType            *string          `json:"feeType" validate:"omitempty,oneof=free paid"`
	Fee                *decimal.Decimal `json:"fee"`
	RegistrationStatus *string          `json:"registrationStatus" validate:"omitempty,oneof=open closed"`
	Visibility         *string          `json:"visibility" validate:"omitempty,oneof=public private"`
}

type UpdateResponse struct {
	response.Response
	Event *models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	Update(ctx context.Context, id, requesterID string, upd storage.EventUpdate) (*models.Event, error)
}

func New(log *slog.Logger, updater EventUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateEvent.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		var req UpdateRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		event, err := updater.Update(r.Context(), eventID, auth.UserID(r.Context()), storage.EventUpdate{
			Title:              req.Title,
			Description:        req.Description,
			Date:               req.Date,
			Time:               req.Time,
			Venue:              req.Venue,
			Category:           req.Category,
			Mode:               req.Mode,
			FeeType:            req.FeeType,
			Fee:                req.Fee,
			RegistrationStatus: req.RegistrationStatus,
			Visibility:         req.Visibility,
		})
		if err != nil {
			switch {
			case errors.Is(err, events.ErrEventNotFound):
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, events.ErrForbidden):
				log.Warn("update by non-creator rejected")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(events.ErrForbidden.Error()))
			case errors.Is(err, events.ErrValidation):
				log.Info("update rejected", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			default:
				log.Error("failed to update event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update event"))
			}
			return
		}

		log.Info("event updated")

		responseOK(w, r, event)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, event *models.Event) {
	render.JSON(w, r, UpdateResponse{
		Response: response.OK(),
		Event:    event,
	})
}
