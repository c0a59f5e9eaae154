package middleware

import (
	"snippetapi/internal/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestLogger writes one line per request through the service logger.
func RequestLogger(log logger.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
			}
			cause := v.Error
			if err, ok := c.Get(CtxErrorKey).(error); ok {
				cause = err
			}
			switch {
			case cause != nil:
				log.Error("request", append(args, "error", cause.Error())...)
			case v.Status >= 500:
				log.Error("request", args...)
			default:
				log.Info("request", args...)
			}
			return nil
		},
	})
}
