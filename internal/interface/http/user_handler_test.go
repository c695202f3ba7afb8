package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func loginToken(t *testing.T, r http.Handler) string {
	t.Helper()
	rec := performRequest(r, http.MethodPost, "/auth/signup", signupBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = performRequest(r, http.MethodPost, "/auth/login", map[string]string{
		"email": "ada@x.com", "password": "s3cret!",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestMe_ReturnsOwnRecordWithoutPasswordHash(t *testing.T) {
	m := newMockUserRepo()
	r, _ := setupRouter(m)
	token := loginToken(t, r)

	rec := performRequest(r, http.MethodGet, "/user/me", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ada", body["name"])
	assert.Equal(t, "ada@x.com", body["email"])
	assert.Equal(t, "local", body["provider"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	// the hash itself must never appear anywhere in the payload
	u, err := m.GetByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
	assert.NotContains(t, rec.Body.String(), u.PasswordHash)
}

func TestMe_AfterAccountDeleted(t *testing.T) {
	m := newMockUserRepo()
	r, _ := setupRouter(m)
	token := loginToken(t, r)

	u, err := m.GetByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
	require.NoError(t, m.Delete(context.Background(), u.ID))

	// the token is still valid but the account is gone: explicit 404
	rec := performRequest(r, http.MethodGet, "/user/me", nil, bearer(token))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User not found.", body.Message)
}

func TestMe_RequiresToken(t *testing.T) {
	r, _ := setupRouter(newMockUserRepo())

	rec := performRequest(r, http.MethodGet, "/user/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = performRequest(r, http.MethodGet, "/user/me", nil, bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_RequiresUserRole(t *testing.T) {
	m := newMockUserRepo()
	r, svc := setupRouter(m)

	rec := performRequest(r, http.MethodPost, "/auth/signup", signupBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	u, err := m.GetByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)

	// a token without the USER role fails the explicit role guard
	token, _, err := svc.JWT.GenerateAccessToken(u.ID, nil)
	require.NoError(t, err)

	rec = performRequest(r, http.MethodGet, "/user/me", nil, bearer(token))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSearch_EmptyWithoutES(t *testing.T) {
	r, _ := setupRouter(newMockUserRepo())
	token := loginToken(t, r)

	rec := performRequest(r, http.MethodGet, "/user/search?q=ada", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Results)
}

func TestMe_MalformedAuthorizationHeader(t *testing.T) {
	r, _ := setupRouter(newMockUserRepo())

	for _, header := range []string{"Token abc", "bearer", "Bearer "} {
		rec := performRequest(r, http.MethodGet, "/user/me", nil, map[string]string{
			"Authorization": header,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.True(t, strings.Contains(rec.Body.String(), "token"), "header %q", header)
	}
}
