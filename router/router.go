package router

import (
	"go-session-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter mounts every route and wraps the whole tree in the auth gate.
// The gate's own allowlist keeps the auth endpoints reachable.
func NewRouter(authHandler *handler.AuthHandler, guard func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /auth/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("GET /auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("POST /auth/logout", handler.ErrorHandlingMiddleware(authHandler.Logout))
	mux.Handle("GET /me", handler.ErrorHandlingMiddleware(authHandler.Me))

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return guard(mux)
}
