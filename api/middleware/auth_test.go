package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/storenest/storenest-backend/pkg/auth"
	"github.com/storenest/storenest-backend/pkg/config"
	"github.com/storenest/storenest-backend/pkg/enums"
)

var testJWT = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "storenest-test",
	ExpirationMinutes: 15,
}

func TestAuthSeedsContextFromToken(t *testing.T) {
	customerID := uuid.New()
	token, err := pkgauth.MintAccessToken(testJWT, time.Now(), pkgauth.AccessTokenPayload{
		CustomerID: customerID,
		Role:       enums.ActorRoleCustomer,
	})
	require.NoError(t, err)

	var gotCustomer, gotRole string
	handler := Auth(testJWT, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCustomer = CustomerIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, customerID.String(), gotCustomer)
	assert.Equal(t, "customer", gotRole)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(testJWT, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsForeignToken(t *testing.T) {
	foreign := config.JWTConfig{Secret: "other-secret", Issuer: "storenest-test", ExpirationMinutes: 15}
	token, err := pkgauth.MintAccessToken(foreign, time.Now(), pkgauth.AccessTokenPayload{
		CustomerID: uuid.New(),
		Role:       enums.ActorRoleCustomer,
	})
	require.NoError(t, err)

	handler := Auth(testJWT, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole("admin", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/orders/x/status", nil)
	r = r.WithContext(WithRole(r.Context(), "customer"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = httptest.NewRequest(http.MethodPatch, "/api/v1/admin/orders/x/status", nil)
	r = r.WithContext(WithRole(r.Context(), "admin"))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
