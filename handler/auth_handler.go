package handler

import (
	"encoding/json"
	"go-session-api/common"
	"go-session-api/model"
	"go-session-api/service"
	"net/http"
)

// AuthHandler owns the authentication endpoints. Field validation and
// status mapping live here; session mechanics live in the SessionManager.
type AuthHandler struct {
	Auth     *service.AuthService
	Sessions *service.SessionManager
	Limiter  *service.LoginLimiter // optional, nil disables throttling
}

func NewAuthHandler(auth *service.AuthService, sessions *service.SessionManager, limiter *service.LoginLimiter) *AuthHandler {
	return &AuthHandler{Auth: auth, Sessions: sessions, Limiter: limiter}
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user account and establishes a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "Registration payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  common.AppError
// @Failure      409  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.Auth.Register(req)
	if err != nil {
		if err == service.ErrEmailTaken {
			return common.NewAppError(http.StatusConflict, "User already exists", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Registration failed", err)
	}

	if err := h.Sessions.Create(w, user.Summary()); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Registration failed", err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful",
		"user":    user.Summary(),
	})
	return nil
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and establishes a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Login payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  common.AppError
// @Failure      401  {object}  common.AppError
// @Failure      429  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if h.Limiter != nil && !h.Limiter.Allow(r.Context(), req.Email) {
		return common.NewAppError(http.StatusTooManyRequests, "Too many login attempts, try again later", nil)
	}

	user, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return common.NewAppError(http.StatusUnauthorized, "Invalid email or password", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "An error occurred during login", err)
	}

	if h.Limiter != nil {
		h.Limiter.Reset(r.Context(), req.Email)
	}

	if err := h.Sessions.Create(w, user.Summary()); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "An error occurred during login", err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user.Summary(),
	})
	return nil
}

// Refresh godoc
// @Summary      Refresh the access token
// @Description  Exchanges the refresh cookie for a new access cookie, then redirects
// @Tags         auth
// @Success      302
// @Router       /auth/refresh [get]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	refreshCookie, err := r.Cookie(service.RefreshCookie)
	if err != nil || refreshCookie.Value == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil
	}

	view := h.Sessions.Refresh(w, refreshCookie.Value)
	if view == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil
	}

	// Send the caller back where they came from.
	target := r.Header.Get("Referer")
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
	return nil
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the refresh record and clears both cookies
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	h.Sessions.Destroy(w, r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	return nil
}

// Me godoc
// @Summary      Current session
// @Description  Returns the session view for the calling user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  model.SessionView
// @Failure      401  {object}  common.AppError
// @Router       /me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	view := h.Sessions.Validate(w, r)
	if view == nil {
		return common.NewAppError(http.StatusUnauthorized, "Not authenticated", nil)
	}
	writeJSON(w, http.StatusOK, view)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
