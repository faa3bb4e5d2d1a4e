package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/metrics"
)

type authMiddleware struct {
	responder Responder
	secret    []byte
}

// newAuthMiddleware guards mutating routes with a static bearer secret. With
// an empty secret every request is rejected.
func newAuthMiddleware(secret string) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		secret:    []byte(secret),
	}
}

func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") || len(m.secret) == 0 {
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}

		token := []byte(strings.TrimPrefix(authHeader, "Bearer "))
		if subtle.ConstantTimeCompare(token, m.secret) != 1 {
			logger := ctxGetLogger(r.Context())
			logger.Warn().Str("path", r.URL.Path).Msg("rejected admin request")
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// AttachRequestLogger puts a logger carrying the chi request id into the
// request context.
func AttachRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.With().Str("requestID", middleware.GetReqID(r.Context())).Logger()
		next.ServeHTTP(w, r.WithContext(ctxWithLogger(r.Context(), logger)))
	})
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
		logger := ctxGetLogger(r.Context())

		defer func() {
			if err := recover(); err != nil {
				logger.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				if !srw.wroteHeader {
					NewResponder(logger).WriteError(srw, errs.NewInternalErrorWithCause("panic", fmt.Errorf("%v", err)))
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status >= http.StatusInternalServerError {
			logger.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", srw.status).
				Msg("server error response")
		}
	})
}

// CORSCheckMiddleware rejects preflight requests from origins outside the
// allow-list with a JSON error instead of a bare response.
func CORSCheckMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || r.Method != http.MethodOptions || originAllowed(allowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}
			NewResponder(ctxGetLogger(r.Context())).WriteError(w, errs.NewCORSError(origin))
		})
	}
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}
	return false
}

// corsMiddleware sets the CORS headers for allowed origins
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// ColoredHTTPLoggingMiddleware logs every request with a level graded by
// status code
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(srw, r)

		logger := ctxGetLogger(r.Context())
		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = logger.Error()
		case srw.status >= 400:
			logEvent = logger.Warn()
		default:
			logEvent = logger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}

// MetricsMiddleware counts requests by method and status.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(srw, r)

		metrics.ObserveRequest(r.Method, srw.status, time.Since(start))
	})
}
