package createEvent

import (
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/services/events"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"log/slog"
	"net/http"
	"time"
)

type EventRequest struct {
	Title              string          `json:"title" validate:"required"`
	Description        string          `json:"description"`
	Date               time.Time       `json:"date" validate:"required"`
	Time               string          `json:"time"`
	Venue              string          `json:"venue"`
	Category           string          `json:"category"`
	Mode               string          `json:"mode" validate:"omitempty,oneof=online offline"`
	FeeType            string          `json:"feeType" validate:"omitempty,oneof=free paid"`
	Fee                decimal.Decimal `json:"fee"`
	RegistrationStatus string          `json:"registrationStatus" validate:"omitempty,oneof=open closed"`
	Visibility         string          `json:"visibility" validate:"omitempty,oneof=public private"`
}

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	Create(ctx context.Context, creatorID string, in events.NewEvent) (*models.Event, error)
}

func New(log *slog.Logger, creator EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.String("title", req.Title))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		event, err := creator.Create(r.Context(), auth.UserID(r.Context()), events.NewEvent{
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
			if errors.Is(err, events.ErrValidation) {
				log.Info("event rejected", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))

				return
			}

			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log.Info("event added", slog.String("id", event.ID))

		render.Status(r, http.StatusCreated)
		responseOK(w, r, event)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, event *models.Event) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Event:    event,
	})
}
