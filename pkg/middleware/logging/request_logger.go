package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_cart/pkg/logging"
)

// RequestLogger puts a request scoped logger into the request context and
// logs one line per request once the handler (and error handler) ran.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", req.Method,
				"path", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}

			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			status := c.Response().Status
			attrs := []any{"status", status, "duration_ms", time.Since(start).Milliseconds()}

			switch {
			case status >= 500:
				if err != nil {
					attrs = append(attrs, "error", err.Error())
				}
				l.Error("request_completed", attrs...)
			case status >= 400:
				l.Warn("request_completed", attrs...)
			default:
				l.Info("request_completed", append(attrs, "bytes", c.Response().Size)...)
			}
			return nil
		}
	}
}
