package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/api/metrics"
)

// WindowCounter abstracts the rate-limit backend (Redis in production).
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit throttles requests per client IP within a fixed window. It is
// applied to the auth endpoints, where credential stuffing is the concern.
// A backend failure fails open: losing the throttle briefly is preferable to
// locking everyone out of login.
func RateLimit(counter WindowCounter, max int64, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "auth:" + c.RealIP()

			count, err := counter.Incr(c.Request().Context(), key, window)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limit check failed, allowing request")
				return next(c)
			}

			if count > max {
				metrics.AuthThrottledTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests,
					"Too many attempts, please try again after 15 minutes")
			}
			return next(c)
		}
	}
}
