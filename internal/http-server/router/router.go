package router

import (
	"context"
	"log/slog"
	"net/http"

	"campusEvents/internal/http-server/handlers/event/bookmarkEvent"
	"campusEvents/internal/http-server/handlers/event/createEvent"
	"campusEvents/internal/http-server/handlers/event/deleteEvent"
	"campusEvents/internal/http-server/handlers/event/getAdminStats"
	"campusEvents/internal/http-server/handlers/event/getAllEvents"
	"campusEvents/internal/http-server/handlers/event/getEventInfo"
	"campusEvents/internal/http-server/handlers/event/getMyEvents"
	"campusEvents/internal/http-server/handlers/event/getRegistrations"
	"campusEvents/internal/http-server/handlers/event/registerForEvent"
	"campusEvents/internal/http-server/handlers/event/updateEvent"
	"campusEvents/internal/http-server/handlers/event/updateRegistration"
	"campusEvents/internal/http-server/handlers/profile/getProfile"
	"campusEvents/internal/http-server/handlers/profile/updateProfile"
	"campusEvents/internal/http-server/middleware/auth"
	"campusEvents/internal/http-server/middleware/mwlogger"
	"campusEvents/internal/http-server/middleware/mwmetrics"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/services/events"
	"campusEvents/internal/services/profile"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Events    *events.Service
	Profiles  *profile.Service
	Storage   Pinger
	JWTSecret []byte
	// RateLimit guards participation mutations. Nil disables it.
	RateLimit func(http.Handler) http.Handler
}

func New(log *slog.Logger, deps Deps) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(mwmetrics.New)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", health(log, deps.Storage))

	limit := deps.RateLimit
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(auth.New(log, deps.JWTSecret))

		r.Route("/events", func(r chi.Router) {
			r.Get("/", getAllEvents.New(log, deps.Events))
			r.With(auth.RequireRole(auth.RoleAdmin)).Post("/", createEvent.New(log, deps.Events))

			r.With(auth.RequireUser).Get("/user/me", getMyEvents.New(log, deps.Events))
			r.With(auth.RequireRole(auth.RoleAdmin)).Get("/admin/stats", getAdminStats.New(log, deps.Events))

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", getEventInfo.New(log, deps.Events))

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireUser)

					r.Put("/", updateEvent.New(log, deps.Events))
					r.Delete("/", deleteEvent.New(log, deps.Events))
					r.With(limit).Post("/register", registerForEvent.New(log, deps.Events))
					r.With(limit).Post("/bookmark", bookmarkEvent.New(log, deps.Events))
					r.Get("/registrations", getRegistrations.New(log, deps.Events))
					r.Patch("/registrations/{userId}", updateRegistration.New(log, deps.Events))
				})
			})
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(auth.RequireUser)

			r.Get("/", getProfile.New(log, deps.Profiles))
			r.Put("/", updateProfile.New(log, deps.Profiles))
		})
	})

	return router
}

func health(log *slog.Logger, storage Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := storage.PingContext(r.Context()); err != nil {
			log.Error("storage is unavailable", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("storage is unavailable"))
			return
		}

		render.JSON(w, r, response.OK())
	}
}
