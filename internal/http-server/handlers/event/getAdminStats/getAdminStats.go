package getAdminStats

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

type StatsResponse struct {
	response.Response
	TotalEvents        int            `json:"totalEvents"`
	TotalRegistrations int            `json:"totalRegistrations"`
	Events             []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatsGetter
type StatsGetter interface {
	AdminStats(ctx context.Context, adminID string) (*events.AdminStats, error)
}

func New(log *slog.Logger, stats StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAdminStats.New"

		adminID := auth.UserID(r.Context())

		log := log.With(slog.String("op", op), slog.String("admin_id", adminID))

		s, err := stats.AdminStats(r.Context(), adminID)
		if err != nil {
			log.Error("failed to compute admin stats", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get admin stats"))
			return
		}

		log.Info("admin stats computed",
			slog.Int("total_events", s.TotalEvents),
			slog.Int("total_registrations", s.TotalRegistrations),
		)

		responseOK(w, r, s)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, s *events.AdminStats) {
	list := s.Events
	if list == nil {
		list = []models.Event{}
	}

	render.JSON(w, r, StatsResponse{
		Response:           response.OK(),
		TotalEvents:        s.TotalEvents,
		TotalRegistrations: s.TotalRegistrations,
		Events:             list,
	})
}
