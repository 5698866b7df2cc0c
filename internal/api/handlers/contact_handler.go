package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/contact-book-be/internal/api/response"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/isdelr/contact-book-be/internal/services"
	"github.com/isdelr/contact-book-be/internal/validation"
)

// ContactHandler handles HTTP requests for the caller's contacts.
type ContactHandler struct {
	service services.ContactServiceProvider
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service services.ContactServiceProvider) *ContactHandler {
	return &ContactHandler{service: service}
}

// Create handles POST /api/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var payload models.CreateContactRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		response.Error(w, r, err)
		return
	}

	contact, err := h.service.Create(r.Context(), user, payload)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, contact)
}

// Get handles GET /api/contacts/{contactId}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	contact, err := h.service.Get(r.Context(), user, chi.URLParam(r, "contactId"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, contact)
}

// Update handles PUT /api/contacts/{contactId}. The id in the path wins over
// any id in the body.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := validation.ID("contactId", chi.URLParam(r, "contactId"))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var payload models.UpdateContactRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		response.Error(w, r, err)
		return
	}
	payload.ID = id

	contact, err := h.service.Update(r.Context(), user, payload)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/{contactId}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), user, chi.URLParam(r, "contactId")); err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w)
}

// Search handles GET /api/contacts?name=&email=&phone=&page=&size=.
func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, err := queryInt(q, "page", models.DefaultPage)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	size, err := queryInt(q, "size", models.DefaultPageSize)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := h.service.Search(r.Context(), user, models.SearchContactRequest{
		Name:  q.Get("name"),
		Email: q.Get("email"),
		Phone: q.Get("phone"),
		Page:  page,
		Size:  size,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}
