package updateProfile

import (
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/services/profile"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type ProfileRequest struct {
	Name      *string  `json:"name" validate:"omitnil,max=100"`
	Gender    *string  `json:"gender" validate:"omitnil,max=30"`
	Phone     *string  `json:"phone" validate:"omitnil,eq=|e164|numeric"`
	College   *string  `json:"college" validate:"omitnil,max=200"`
	Degree    *string  `json:"degree" validate:"omitnil,max=100"`
	Branch    *string  `json:"branch" validate:"omitnil,max=100"`
	Year      *string  `json:"year" validate:"omitnil,max=20"`
	Bio       *string  `json:"bio" validate:"omitnil,max=1000"`
	Skills    []string `json:"skills" validate:"omitempty,max=50,dive,max=50"`
	Interests []string `json:"interests" validate:"omitempty,max=50,dive,max=50"`
}

type ProfileResponse struct {
	response.Response
	Profile *models.Profile `json:"profile"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ProfileUpdater
type ProfileUpdater interface {
	Update(ctx context.Context, userID string, upd profile.Update) (*models.Profile, error)
}

func New(log *slog.Logger, updater ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profile.updateProfile.New"

		userID := auth.UserID(r.Context())

		log := log.With(slog.String("op", op), slog.String("user_id", userID))

		var req ProfileRequest

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

		p, err := updater.Update(r.Context(), userID, profile.Update{
			Name:      req.Name,
			Gender:    req.Gender,
			Phone:     req.Phone,
			College:   req.College,
			Degree:    req.Degree,
			Branch:    req.Branch,
			Year:      req.Year,
			Bio:       req.Bio,
			Skills:    req.Skills,
			Interests: req.Interests,
		})
		if err != nil {
			log.Error("failed to update profile", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update profile"))
			return
		}

		log.Info("profile updated", slog.Int("completion", p.ProfileCompletion))

		render.JSON(w, r, ProfileResponse{
			Response: response.OK(),
			Profile:  p,
		})
	}
}
