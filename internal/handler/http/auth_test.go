package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fanclubhq/fanclub/internal/auth"
	"github.com/fanclubhq/fanclub/internal/domain"
	apperrors "github.com/fanclubhq/fanclub/pkg/errors"
)

func TestRegister_Success(t *testing.T) {
	f := newRouterFixture(t)

	f.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	body := `{"email":"ada@example.com","password":"Sup3rSecret","first_name":"Ada","last_name":"Lovelace"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
	f.userRepo.AssertExpectations(t)
}

func TestRegister_ValidationError(t *testing.T) {
	f := newRouterFixture(t)

	body := `{"email":"not-an-email","password":"short","first_name":"","last_name":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newRouterFixture(t)

	f.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, apperrors.ErrNotFound)

	body := `{"email":"ada@example.com","password":"WrongPass1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestProfile_Success(t *testing.T) {
	f := newRouterFixture(t)

	user := &domain.User{ID: "user-1", Email: "ada@example.com", Role: domain.RoleMember}
	f.userRepo.On("GetByID", mock.Anything, "user-1").Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+f.bearerToken(t, "user-1", "ada@example.com", domain.RoleMember))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
}

func TestProfile_MissingToken(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfile_GarbageToken(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoogleRedirect_SetsStateAndRedirects(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google", nil)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	var state string
	for _, c := range rec.Result().Cookies() {
		if c.Name == oauthStateCookie {
			state = c.Value
		}
	}
	require.NotEmpty(t, state)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", location.Host)
	assert.Equal(t, state, location.Query().Get("state"))
}

func googleCallbackRequest(state, cookieState, code string) *http.Request {
	target := "/api/v1/auth/google/callback?state=" + url.QueryEscape(state) + "&code=" + url.QueryEscape(code)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookieState != "" {
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: cookieState})
	}
	return req
}

func TestGoogleCallback_NewUser(t *testing.T) {
	f := newRouterFixture(t)

	f.google.profile = auth.Profile{
		Provider:    domain.ProviderGoogle,
		ProviderID:  "g-1",
		Email:       "ada@example.com",
		DisplayName: "Ada Lovelace",
	}
	f.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, apperrors.ErrNotFound)
	f.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, googleCallbackRequest("nonce-1", "nonce-1", "auth-code"))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/callback", location.Path)
	assert.NotEmpty(t, location.Query().Get("token"))
	assert.Empty(t, location.Query().Get("error"))
	f.userRepo.AssertExpectations(t)
}

func TestGoogleCallback_StateMismatch(t *testing.T) {
	f := newRouterFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, googleCallbackRequest("nonce-1", "other-nonce", "auth-code"))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "invalid_state", location.Query().Get("error"))
	f.userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestGoogleCallback_ExchangeFailure(t *testing.T) {
	f := newRouterFixture(t)

	f.google.err = apperrors.Unauthorized("google code exchange failed")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, googleCallbackRequest("nonce-1", "nonce-1", "bad-code"))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "exchange_failed", location.Query().Get("error"))
}

func TestGoogleCallback_PersistenceFailureRedirectsWithError(t *testing.T) {
	f := newRouterFixture(t)

	f.google.profile = auth.Profile{
		Provider:    domain.ProviderGoogle,
		ProviderID:  "g-1",
		Email:       "ada@example.com",
		DisplayName: "Ada Lovelace",
	}
	f.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, apperrors.ErrNotFound)
	f.userRepo.On("Create", mock.Anything, mock.Anything).Return(apperrors.Internal(assert.AnError))

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, googleCallbackRequest("nonce-1", "nonce-1", "auth-code"))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "signin_failed", location.Query().Get("error"))
	assert.Empty(t, location.Query().Get("token"))
}

func TestGoogleCallback_ProviderError(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "access_denied", location.Query().Get("error"))
}
