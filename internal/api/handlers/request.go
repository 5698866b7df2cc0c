package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/isdelr/contact-book-be/internal/api/response"
	"github.com/isdelr/contact-book-be/internal/apierror"
	"github.com/isdelr/contact-book-be/internal/auth"
	"github.com/isdelr/contact-book-be/internal/models"
)

const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into v. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apierror.BadRequest("Request body is required")
		}
		return apierror.BadRequest("Invalid request body")
	}
	return nil
}

// currentUser returns the user placed in the context by auth.Middleware,
// writing a 401 when it is missing.
func currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, apierror.Unauthorized("Unauthorized"))
		return models.User{}, false
	}
	return user, true
}

// queryInt reads an integer query parameter, using fallback when it is absent.
func queryInt(q url.Values, key string, fallback int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierror.BadRequest(key + " must be a number")
	}
	return v, nil
}
