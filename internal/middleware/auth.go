package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mercato/mercato/internal/auth"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Resolver *auth.Resolver
}

// Auth returns a middleware that authenticates requests with a bearer
// token. The resolver verifies the token and re-reads the subject from
// the store on every request; on success the authenticated user is
// injected into the request context.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, "invalid token")
				return
			}

			user, err := cfg.Resolver.Resolve(r.Context(), token)
			if err != nil {
				reason, message := classifyRejection(err)
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, message)
				return
			}

			cfg.Logger.Info("authentication successful",
				slog.Int64("user_id", user.ID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// classifyRejection maps resolver errors to a log reason and the
// client-visible message. Expiry is distinguished so clients can prompt
// a re-login; tampering and malformed tokens share one message.
func classifyRejection(err error) (reason, message string) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "token_expired", "token has expired"
	case errors.Is(err, auth.ErrUnknownSubject):
		return "unknown_subject", "user not found"
	case errors.Is(err, auth.ErrTokenBadSignature):
		return "bad_signature", "invalid token"
	case errors.Is(err, auth.ErrTokenMalformed):
		return "malformed_token", "invalid token"
	default:
		return "internal_error", "invalid token"
	}
}

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"` + message + `"}}`))
}
