package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitkhm/docvault/internal/middleware"
)

func TestAuthHTTP_Register(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	payload := map[string]string{"email": "a@b.com", "password": "Password1!"}

	rec, c := env.doJSONRequest(http.MethodPost, "/auth/register", payload)
	require.NoError(t, env.auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a@b.com", resp["email"])
	assert.Equal(t, "user", resp["role"])
	assert.NotEmpty(t, resp["id"])
	assert.NotContains(t, rec.Body.String(), "Password1!")
	assert.NotContains(t, resp, "password_hash")
}

func TestAuthHTTP_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	payload := map[string]string{"email": "a@b.com", "password": "Password1!"}

	_, c := env.doJSONRequest(http.MethodPost, "/auth/register", payload)
	require.NoError(t, env.auth.Register(c))

	payload["password"] = "Password2!"
	_, c2 := env.doJSONRequest(http.MethodPost, "/auth/register", payload)
	he := httpError(t, env.auth.Register(c2))
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestAuthHTTP_Register_WeakPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	payload := map[string]string{"email": "a@b.com", "password": "weak"}

	_, c := env.doJSONRequest(http.MethodPost, "/auth/register", payload)
	he := httpError(t, env.auth.Register(c))
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAuthHTTP_Login(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	payload := map[string]string{"email": "a@b.com", "password": "Password1!"}

	_, cReg := env.doJSONRequest(http.MethodPost, "/auth/register", payload)
	require.NoError(t, env.auth.Register(cReg))

	rec, c := env.doJSONRequest(http.MethodPost, "/auth/login", payload)
	require.NoError(t, env.auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "a@b.com", resp.User.Email)

	claims, err := env.codec.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.Subject)
}

func TestAuthHTTP_Login_InvalidCredentials_SameShape(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	payload := map[string]string{"email": "a@b.com", "password": "Password1!"}

	_, cReg := env.doJSONRequest(http.MethodPost, "/auth/register", payload)
	require.NoError(t, env.auth.Register(cReg))

	_, cWrong := env.doJSONRequest(http.MethodPost, "/auth/login",
		map[string]string{"email": "a@b.com", "password": "wrong"})
	heWrong := httpError(t, env.auth.Login(cWrong))

	_, cUnknown := env.doJSONRequest(http.MethodPost, "/auth/login",
		map[string]string{"email": "nobody@b.com", "password": "x"})
	heUnknown := httpError(t, env.auth.Login(cUnknown))

	assert.Equal(t, http.StatusForbidden, heWrong.Code)
	assert.Equal(t, heWrong.Code, heUnknown.Code)
	assert.Equal(t, heWrong.Message, heUnknown.Message)
}

func TestAuthHTTP_Logout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	payload := map[string]string{"email": "a@b.com", "password": "Password1!"}

	regRec, cReg := env.doJSONRequest(http.MethodPost, "/auth/register", payload)
	require.NoError(t, env.auth.Register(cReg))

	var user struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(regRec.Body.Bytes(), &user))

	rec, c := env.doJSONRequest(http.MethodPost, "/logout", nil)
	c.Set(middleware.CtxUserID, user.ID)
	require.NoError(t, env.auth.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestAuthHTTP_Logout_MissingUserID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/logout", nil)
	he := httpError(t, env.auth.Logout(c))
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAuthHTTP_Logout_UnknownUser_StillResponds(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/logout", nil)
	c.Set(middleware.CtxUserID, "no-such-user")
	require.NoError(t, env.auth.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}
