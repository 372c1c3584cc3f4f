package getProfile

import (
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type ProfileResponse struct {
	response.Response
	Profile *models.Profile `json:"profile"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ProfileGetter
type ProfileGetter interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
}

func New(log *slog.Logger, getter ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profile.getProfile.New"

		userID := auth.UserID(r.Context())

		log := log.With(slog.String("op", op), slog.String("user_id", userID))

		p, err := getter.Get(r.Context(), userID)
		if err != nil {
			log.Error("failed to get profile", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get profile"))
			return
		}

		responseOK(w, r, p)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, p *models.Profile) {
	render.JSON(w, r, ProfileResponse{
		Response: response.OK(),
		Profile:  p,
	})
}
