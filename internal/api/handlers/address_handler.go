package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/contact-book-be/internal/api/response"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/isdelr/contact-book-be/internal/services"
	"github.com/isdelr/contact-book-be/internal/validation"
)

// AddressHandler handles HTTP requests for a contact's addresses.
type AddressHandler struct {
	service services.AddressServiceProvider
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service services.AddressServiceProvider) *AddressHandler {
	return &AddressHandler{service: service}
}

// Create handles POST /api/contacts/{contactId}/addresses.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var payload models.CreateAddressRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		response.Error(w, r, err)
		return
	}

	address, err := h.service.Create(r.Context(), user, chi.URLParam(r, "contactId"), payload)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, address)
}

// List handles GET /api/contacts/{contactId}/addresses.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	addresses, err := h.service.List(r.Context(), user, chi.URLParam(r, "contactId"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, addresses)
}

// Get handles GET /api/contacts/{contactId}/addresses/{addressId}.
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	address, err := h.service.Get(r.Context(), user, chi.URLParam(r, "contactId"), chi.URLParam(r, "addressId"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, address)
}

// Update handles PUT /api/contacts/{contactId}/addresses/{addressId}.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := validation.ID("addressId", chi.URLParam(r, "addressId"))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var payload models.UpdateAddressRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		response.Error(w, r, err)
		return
	}
	payload.ID = id

	address, err := h.service.Update(r.Context(), user, chi.URLParam(r, "contactId"), payload)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, address)
}

// Delete handles DELETE /api/contacts/{contactId}/addresses/{addressId}.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.service.Remove(r.Context(), user, chi.URLParam(r, "contactId"), chi.URLParam(r, "addressId"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w)
}
