package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestObserver receives every finished request, e.g. for metrics.
type RequestObserver func(r *http.Request, status int, elapsed time.Duration)

// RequestLogger writes one structured line per request.
func RequestLogger(logger *zap.Logger, observers ...RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", elapsed),
				zap.String("remote", r.RemoteAddr),
			}
			if c, ok := ClaimsFromContext(r.Context()); ok {
				fields = append(fields, zap.String("uid", c.UID))
			}
			if status >= http.StatusInternalServerError {
				logger.Error("Request failed", fields...)
			} else {
				logger.Info("Request served", fields...)
			}
			for _, obs := range observers {
				obs(r, status, elapsed)
			}
		})
	}
}
