package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/isdelr/contact-book-be/internal/api/response"
	"github.com/isdelr/contact-book-be/internal/apierror"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/rs/zerolog/log"
)

// CookieName is the cookie carrying the session token for browser clients.
const CookieName = "token"

type contextKey string

// UserKey is the context key for the authenticated user.
const UserKey = contextKey("user")

// TokenResolver resolves a session token to its user.
type TokenResolver interface {
	GetByToken(ctx context.Context, token string) (models.User, error)
}

// TokenFromRequest extracts the session token from the Authorization header,
// with or without a "Bearer " prefix, falling back to the token cookie.
func TokenFromRequest(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return header
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Middleware rejects requests without a valid session token with 401 and
// passes the resolved user down via the request context.
func Middleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				response.Error(w, r, apierror.Unauthorized("Unauthorized"))
				return
			}

			user, err := resolver.GetByToken(r.Context(), token)
			if err != nil {
				if _, ok := apierror.As(err); ok {
					log.Debug().Str("path", r.URL.Path).Msg("Rejected invalid session token")
				}
				response.Error(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user stored by Middleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserKey).(models.User)
	return user, ok
}
