package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authProtected(t *testing.T, keys []string) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, _ := r.Context().Value(APIKeyKey).(string)
		w.Header().Set("X-Seen-Key", key)
		w.WriteHeader(http.StatusOK)
	})
	return APIKeyAuth(keys)(next)
}

func TestAPIKeyAuthAcceptsBearerToken(t *testing.T) {
	h := authProtected(t, []string{"secret-1"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/status", nil)
	req.Header.Set("Authorization", "Bearer secret-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "secret-1", rec.Header().Get("X-Seen-Key"))
}

func TestAPIKeyAuthAcceptsBareKey(t *testing.T) {
	h := authProtected(t, []string{"secret-1", "secret-2"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/status", nil)
	req.Header.Set("Authorization", "secret-2")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyAuthRejectsMissingHeader(t *testing.T) {
	h := authProtected(t, []string{"secret-1"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/status", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyAuthRejectsWrongKey(t *testing.T) {
	h := authProtected(t, []string{"secret-1"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/status", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyAuthSkipsOpenPaths(t *testing.T) {
	h := authProtected(t, []string{"secret-1"})

	for _, path := range []string{"/", "/api/v1/health", "/ws"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}
