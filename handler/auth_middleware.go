package handler

import (
	"context"
	"go-session-api/service"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
)

// publicPrefixes bypass the gate entirely: auth endpoints, the login and
// registration pages, and operational routes.
var publicPrefixes = []string{
	"/auth/",
	"/login",
	"/register",
	"/health",
	"/swagger/",
}

// NewAuthMiddleware builds the per-request gate. It consults only the
// token codec — the fast path never touches the store. Requests holding a
// refresh cookie but no valid access token are bounced to the refresh
// endpoint, which performs the store lookup and re-admits.
func NewAuthMiddleware(codec *service.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range publicPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			refreshCookie, err := r.Cookie(service.RefreshCookie)
			if err != nil || refreshCookie.Value == "" {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			if accessCookie, err := r.Cookie(service.SessionCookie); err == nil {
				if claims, ok := codec.Verify(accessCookie.Value); ok {
					ctx := context.WithValue(r.Context(), UserIDKey, claims.Subject)
					ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			http.Redirect(w, r, "/auth/refresh", http.StatusFound)
		})
	}
}
