// Package attr holds the slog attribute helpers shared by every module so log keys stay consistent.
package attr

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
)

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

func Float64(key string, value float64) slog.Attr {
	return slog.Float64(key, value)
}

func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Error renders err under the "error" key. A nil error renders as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// ExtractRequestID returns the chi request id stored on ctx, if any.
func ExtractRequestID(ctx context.Context) slog.Attr {
	return slog.String("request_id", middleware.GetReqID(ctx))
}
