package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spetersoncode/flux"
)

// Logging returns middleware that logs every dispatch and its outcome.
func Logging[S any](logger *slog.Logger) flux.Middleware[S] {
	if logger == nil {
		logger = slog.Default()
	}
	return func(api flux.MiddlewareAPI[S]) flux.Link {
		return func(next flux.Dispatch) flux.Dispatch {
			return func(a flux.Action) (any, error) {
				id := uuid.NewString()
				logger.Debug("dispatch started",
					slog.String("action", a.Type()),
					slog.String("dispatch_id", id),
				)

				start := time.Now()
				result, err := next(a)
				elapsed := time.Since(start)

				if err != nil {
					logger.Error("dispatch failed",
						slog.String("action", a.Type()),
						slog.String("dispatch_id", id),
						slog.Duration("elapsed", elapsed),
						slog.String("error", err.Error()),
					)
				} else {
					logger.Info("dispatch completed",
						slog.String("action", a.Type()),
						slog.String("dispatch_id", id),
						slog.Duration("elapsed", elapsed),
					)
				}

				return result, err
			}
		}
	}
}
