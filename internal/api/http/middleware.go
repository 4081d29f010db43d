package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"groupmanagement/internal/config"
	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/security"
)

const requestIDHeader = "X-Request-ID"

// IdentityResolver turns request credentials into the caller identity.
type IdentityResolver interface {
	Authenticate(ctx context.Context, c security.Credentials) (*domain.Identity, error)
}

type AuthMiddleware struct {
	resolver IdentityResolver
	headers  config.IdentityConfig
}

func NewAuthMiddleware(resolver IdentityResolver, headers config.IdentityConfig) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
		headers:  headers,
	}
}

// Middleware resolves the caller for every matched route and rejects
// anonymous callers on routes that require authentication.
func (m *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.SecurityAuthenticated
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				level = config.GetSecurityLevel(r.Method, tpl)
			}
		}

		identity, err := m.resolver.Authenticate(r.Context(), m.credentials(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if level == config.SecurityAuthenticated && identity.IsAnonymous() {
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	})
}

func (m *AuthMiddleware) credentials(r *http.Request) security.Credentials {
	c := security.Credentials{
		BearerToken: bearerToken(r),
		HeaderEmail: r.Header.Get(m.headers.EmailHeader),
		HeaderFirst: r.Header.Get(m.headers.FirstNameHeader),
		HeaderLast:  r.Header.Get(m.headers.LastNameHeader),
	}
	if cookie, err := r.Cookie(m.headers.FakeLoginCookie); err == nil {
		c.FakeLoginEmail = cookie.Value
	}
	return c
}

func bearerToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		return strings.TrimSpace(token[7:])
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// RequestLogger tags the request with an id, logs one access line per
// request and turns panics into 500 responses.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := logger.WithRequestID(r.Context(), id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				logger.ErrorContext(ctx, "Panic while serving request", "panic", p, "method", r.Method, "path", r.URL.Path)
				writeJSON(rec, http.StatusInternalServerError,
					errorResponse{Status: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError)})
			}
			logger.InfoContext(ctx, "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds())
		}()

		next.ServeHTTP(rec, r.WithContext(ctx))
	})
}
