package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pageturne/storefront-backend/pkg/auth"
	"github.com/pageturne/storefront-backend/pkg/config"
	"github.com/pageturne/storefront-backend/pkg/logger"
)

type userIDCtxKey struct{}

// OptionalAuth attaches the signed-in user's id when a valid bearer token is
// present. Requests without a token (or with an invalid one) proceed
// anonymously; checkout never requires an account.
func OptionalAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok && cfg.Secret != "" {
				claims, err := auth.ParseAccessToken(cfg, strings.TrimSpace(token))
				if err == nil && claims.UserID != uuid.Nil {
					ctx = context.WithValue(ctx, userIDCtxKey{}, claims.UserID)
					if logg != nil {
						ctx = logg.WithUserID(ctx, claims.UserID.String())
					}
				} else if logg != nil {
					logg.Warn(logg.WithField(ctx, "reason", "invalid bearer token"), "auth.ignored")
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, or nil for anonymous
// shoppers.
func UserIDFromContext(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(userIDCtxKey{}).(uuid.UUID); ok {
		return &id
	}
	return nil
}
