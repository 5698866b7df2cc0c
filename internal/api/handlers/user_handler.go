package handlers

import (
	"net/http"

	"github.com/isdelr/contact-book-be/internal/api/response"
	"github.com/isdelr/contact-book-be/internal/auth"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/isdelr/contact-book-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ConnectionCloser closes a user's live connections.
type ConnectionCloser interface {
	Disconnect(username string)
}

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service      services.UserServiceProvider
	connections  ConnectionCloser
	secureCookie bool
}

// NewUserHandler creates a new UserHandler. connections may be nil.
// secureCookie sets the Secure flag on the session cookie and should be true
// in production.
func NewUserHandler(service services.UserServiceProvider, connections ConnectionCloser, secureCookie bool) *UserHandler {
	return &UserHandler{service: service, connections: connections, secureCookie: secureCookie}
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload models.RegisterUserRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		response.Error(w, r, err)
		return
	}

	user, err := h.service.Register(r.Context(), payload)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, user)
}

// Login handles authentication and issues a session token, returned in the
// body and as an HttpOnly cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload models.LoginUserRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		response.Error(w, r, err)
		return
	}

	token, err := h.service.Login(r.Context(), payload)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed authentication attempt")
		response.Error(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token.Token,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	response.Data(w, http.StatusOK, token)
}

// GetCurrent returns the authenticated user's profile.
func (h *UserHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	current, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.service.Get(r.Context(), current.Username)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, user)
}

// UpdateCurrent applies a partial update to the authenticated user.
func (h *UserHandler) UpdateCurrent(w http.ResponseWriter, r *http.Request) {
	current, ok := currentUser(w, r)
	if !ok {
		return
	}

	var payload models.UpdateUserRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		response.Error(w, r, err)
		return
	}
	payload.Username = current.Username

	user, err := h.service.Update(r.Context(), payload)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, user)
}

// Logout revokes the session token, closes the user's websocket connections
// and clears the cookie.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	current, ok := currentUser(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Logout(r.Context(), current.Username); err != nil {
		log.Error().Err(err).Str("username", current.Username).Msg("Failed to log out")
		response.Error(w, r, err)
		return
	}
	if h.connections != nil {
		h.connections.Disconnect(current.Username)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	response.OK(w)
}
