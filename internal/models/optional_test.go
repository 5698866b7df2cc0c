package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalTracksPresence(t *testing.T) {
	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Hilmi"}`), &req))

	name, ok := req.Name.Get()
	assert.True(t, ok)
	assert.Equal(t, "Hilmi", name)
	assert.False(t, req.Password.Set)
	assert.Nil(t, req.Password.Ptr())
}

func TestOptionalExplicitEmptyIsSet(t *testing.T) {
	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":""}`), &req))

	assert.True(t, req.Name.Set)
	assert.Equal(t, "", req.Name.Value)
}

func TestOptionalNullIsAbsent(t *testing.T) {
	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"password":"secret"}`), &req))

	assert.False(t, req.Name.Set)
	assert.Equal(t, "secret", *req.Password.Ptr())
}

func TestOptionalMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[int]    `json:"b"`
	}{A: Some("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(out))
}
