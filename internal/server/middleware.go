package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"rag-gateway/internal/failures"
	"rag-gateway/internal/handlers"
	"rag-gateway/internal/metrics"
	"rag-gateway/internal/requestid"
	"rag-gateway/internal/routes"

	"go.uber.org/zap"
)

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestid.Header)
			w.Header().Set("Access-Control-Expose-Headers", requestid.Header)

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// recoveryMiddleware turns a panic into an unhandled failure response. The
// stack is logged, never sent to the client.
func recoveryMiddleware(logger *zap.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					logger.Error("Panic in handler",
						zap.Any("panic", rec),
						zap.String("request_id", requestid.FromContext(r.Context())),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Bool("response_started", rw.written),
						zap.ByteString("stack", debug.Stack()),
					)

					err := failures.Unhandled(fmt.Errorf("panic: %v", rec))
					err.Message = failures.GenericMessage
					collector.RecordFailure(string(failures.RouteUnknown), err.Kind.String())

					// the status line is already on the wire
					if rw.written {
						return
					}

					handlers.WriteTranslated(rw, failures.Translate(failures.RouteUnknown, err), logger)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// requestIDMiddleware assigns every request an ID, reusing the caller's
// X-Request-ID when present, and echoes it in the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" {
			id = requestid.New()
		}

		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.WithContext(r.Context(), id)))
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.written {
		rw.status = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// accessLogMiddleware logs each request and records its metrics. It runs
// inside the router so the matched route name is known; unmatched requests
// reach it through the router's NotFound and MethodNotAllowed handlers.
func accessLogMiddleware(logger *zap.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			done := collector.TrackInFlight()
			defer done()

			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			route := routes.RouteName(r)
			elapsed := time.Since(start)
			collector.RecordRequest(route, r.Method, rw.status, elapsed)

			fields := []zap.Field{
				zap.String("request_id", requestid.FromContext(r.Context())),
				zap.String("route", route),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rw.status),
				zap.Duration("duration", elapsed),
				zap.String("remote_addr", r.RemoteAddr),
			}
			switch {
			case rw.status >= http.StatusInternalServerError:
				logger.Error("Request completed", fields...)
			case rw.status >= http.StatusBadRequest:
				logger.Warn("Request completed", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
		})
	}
}
