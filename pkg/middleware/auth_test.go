package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validatorFor(claims *Claims, err error) TokenValidator {
	return func(token string) (*Claims, error) {
		if err != nil {
			return nil, err
		}
		return claims, nil
	}
}

func claimsEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test-User", UserIDFromContext(r.Context()))
		w.Header().Set("X-Test-Role", RoleFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := Auth(validatorFor(&Claims{}, nil))(claimsEcho())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestAuth_MalformedHeader(t *testing.T) {
	handler := Auth(validatorFor(&Claims{}, nil))(claimsEcho())

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	handler := Auth(validatorFor(nil, errors.New("expired")))(claimsEcho())

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestAuth_InjectsClaims(t *testing.T) {
	claims := &Claims{UserID: "u-1", Email: "fan@example.com", Role: "member"}
	handler := Auth(validatorFor(claims, nil))(claimsEcho())

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", rec.Header().Get("X-Test-User"))
	assert.Equal(t, "member", rec.Header().Get("X-Test-Role"))
}

func TestRequireRole(t *testing.T) {
	claims := &Claims{UserID: "u-2", Role: "member"}
	admin := Auth(validatorFor(claims, nil))(RequireRole("admin")(claimsEcho()))

	req := httptest.NewRequest(http.MethodPost, "/gallery", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	admin.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	member := Auth(validatorFor(claims, nil))(RequireRole("admin", "member")(claimsEcho()))
	rec = httptest.NewRecorder()
	member.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
