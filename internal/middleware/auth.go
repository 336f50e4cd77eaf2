package middleware

import (
	"context"
	"net/http"

	"github.com/arman/volunteer-network-server/internal/auth"
	"github.com/arman/volunteer-network-server/internal/httpx"
)

type emailKey struct{}

// RequireAuth validates the token from the cookie (or, failing that, the
// token query parameter) and injects the verified email into the request
// context. Handlers read it back with EmailFrom; nothing downstream ever
// trusts a client-supplied email for owner-scoped queries.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(auth.CookieName); err == nil {
				token = c.Value
			}
			if token == "" {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				httpx.Error(w, httpx.ErrUnauthenticated, "Unauthorized access, token missing")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				httpx.Error(w, err, "Forbidden, invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), emailKey{}, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFrom returns the authenticated email set by RequireAuth.
func EmailFrom(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey{}).(string)
	return email, ok
}

// WithEmail returns a context carrying an authenticated email. Test helper
// for handlers that read EmailFrom.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey{}, email)
}
