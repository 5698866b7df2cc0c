package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/isdelr/contact-book-be/internal/apierror"
	"github.com/stretchr/testify/assert"
)

func TestData(t *testing.T) {
	rec := httptest.NewRecorder()
	Data(rec, http.StatusCreated, map[string]string{"username": "test"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"username":"test"}}`, rec.Body.String())
}

func TestErrorUsesAPIErrorStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contacts/1", nil)
	Error(rec, req, apierror.NotFound("Contact not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"errors":"Contact not found"}`, rec.Body.String())
}

func TestErrorHidesUnexpectedFailures(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	Error(rec, req, errors.New("database is locked"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"errors":"Internal server error"}`, rec.Body.String())
}
