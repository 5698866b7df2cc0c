package handlers

import (
	"net/http"
	"strconv"

	"github.com/isdelr/contact-book-be/internal/api/response"
	"github.com/isdelr/contact-book-be/internal/services"
	"github.com/rs/zerolog/log"
)

// EventHandler handles HTTP requests related to the activity log.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent handles the request to get the caller's recent activity.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	// Absent or malformed limits fall back to the service default.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := h.service.Recent(r.Context(), user.Username, limit)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Failed to retrieve events")
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, events)
}
