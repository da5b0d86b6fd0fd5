package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "policyhub/pkg/domain"
	"policyhub/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	AccountID id.AccountID
	Login     string
}

type contextKeyLogin struct{}

// ContextKeyLogin is exported for tests that need context.WithValue directly.
var ContextKeyLogin = contextKeyLogin{}

// GetLogin retrieves the authenticated login from the context.
func GetLogin(ctx context.Context) string {
	login, ok := ctx.Value(ContextKeyLogin).(string)
	if !ok {
		return ""
	}
	return login
}

// GetAccountID retrieves the authenticated account ID from the context.
func GetAccountID(ctx context.Context) id.AccountID {
	return requestcontext.AccountID(ctx)
}

// RequireAuth gates a route group behind bearer-token authentication. On
// success the account ID and login are attached to the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithAccountID(ctx, claims.AccountID)
			ctx = context.WithValue(ctx, ContextKeyLogin, claims.Login)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
