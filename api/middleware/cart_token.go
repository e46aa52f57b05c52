package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pageturne/storefront-backend/pkg/logger"
)

const (
	cartCookieName = "pt_cart"
	cartCookieAge  = 365 * 24 * time.Hour
)

type cartTokenCtxKey struct{}

// CartToken ensures every request carries a stable cart token. The cookie is
// long-lived: the cart it keys must survive a full browser restart.
func CartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(cartCookieName); err == nil && cookie.Value != "" {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					token = cookie.Value
				}
			}

			if token == "" {
				token = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cartCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cartCookieAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), cartTokenCtxKey{}, token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCartToken injects a cart token directly, bypassing the cookie exchange.
func WithCartToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, cartTokenCtxKey{}, token)
}

// CartTokenFromContext returns the token set by CartToken, or "".
func CartTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(cartTokenCtxKey{}).(string); ok {
		return token
	}
	return ""
}
