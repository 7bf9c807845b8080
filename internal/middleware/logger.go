package middleware

import (
	"context"
	"log/slog"
	"net/http"
)

// LoggerContextKey is the context key for the request-scoped logger.
const LoggerContextKey contextKey = "logger"

// WithRequestLogger injects a request-scoped logger carrying the request ID,
// method and route. The route is the bounded metrics label, so logs and
// metrics group lookups for different postcodes the same way.
// Place it after RequestID.
func WithRequestLogger(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attrs := []any{
				slog.String("method", r.Method),
				slog.String("route", normalizePath(r.URL.Path)),
			}
			if requestID := GetRequestID(r.Context()); requestID != "" {
				attrs = append(attrs, slog.String("request_id", requestID))
			}

			ctx := context.WithValue(r.Context(), LoggerContextKey, baseLogger.With(attrs...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithLogAttrs returns a copy of ctx whose request logger also carries args.
// Without a request logger it starts from slog.Default().
func WithLogAttrs(ctx context.Context, args ...any) context.Context {
	return context.WithValue(ctx, LoggerContextKey, GetLogger(ctx).With(args...))
}

// GetLogger retrieves the request-scoped logger from the context, falling
// back to fallback and then slog.Default().
func GetLogger(ctx context.Context, fallback ...*slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*slog.Logger); ok {
		return logger
	}
	if len(fallback) > 0 && fallback[0] != nil {
		return fallback[0]
	}
	return slog.Default()
}
