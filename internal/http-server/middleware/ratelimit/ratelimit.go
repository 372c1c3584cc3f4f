package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"campusEvents/internal/http-server/middleware/auth"
	resp "campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/lib/metrics"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "campus-events:ratelimit:"

// New allows at most limit requests per caller in each window. The window
// starts with the caller's first request. Redis failures let requests through.
func New(log *slog.Logger, rdb redis.Cmdable, limit int64, window time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/ratelimit"),
		)

		log.Info("rate limit middleware enabled",
			slog.Int64("limit", limit),
			slog.String("window", window.String()),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := keyPrefix + caller(r)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				log.Error("failed to count request",
					slog.String("request_id", middleware.GetReqID(ctx)),
					sl.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				if err = rdb.Expire(ctx, key, window).Err(); err != nil {
					log.Error("failed to set window expiry", sl.Err(err))
				}
			}

			if count > limit {
				metrics.RateLimited.Inc()

				w.Header().Set("Retry-After", retryAfter(window))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, resp.Error("too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func caller(r *http.Request) string {
	if id := auth.UserID(r.Context()); id != "" {
		return "user:" + id
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "ip:" + host
}

func retryAfter(window time.Duration) string {
	secs := int64(window / time.Second)
	if secs < 1 {
		secs = 1
	}

	return strconv.FormatInt(secs, 10)
}
