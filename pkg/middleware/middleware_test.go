package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
	"github.com/vfg2006/tabc-sales-api/internal/usecases/authenticating"
)

type stubAuthenticator struct {
	claims *domain.Claims
	err    error
}

func (s stubAuthenticator) GenerateToken(string, int, time.Duration) (string, error) {
	return "", nil
}

func (s stubAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		auth       stubAuthenticator
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Sem token é barrado na rota administrativa",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH_006",
		},
		{
			name:       "Header sem Bearer",
			header:     "Token abc",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH_006",
		},
		{
			name:       "Token expirado",
			header:     "Bearer abc",
			auth:       stubAuthenticator{err: authenticating.ErrExpiredToken},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH_007",
		},
		{
			name:       "Papel sem permissão",
			header:     "Bearer abc",
			auth:       stubAuthenticator{claims: &domain.Claims{Name: "ui", UserRoleID: RoleViewer}},
			wantStatus: http.StatusForbidden,
			wantCode:   "AUTH_008",
		},
		{
			name:       "Administrador acessa",
			header:     "Bearer abc",
			auth:       stubAuthenticator{claims: &domain.Claims{Name: "ops", UserRoleID: RoleAdmin}},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(tt.auth)(AdminOnly()(okHandler()))

			req := httptest.NewRequest(http.MethodPost, "/v1/admin/import", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestAuthMiddleware_PublicRouteWithoutToken(t *testing.T) {
	handler := AuthMiddleware(stubAuthenticator{})(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/locations", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	t.Run("Origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/locations", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/locations", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight responde sem chamar o handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/locations", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/locations", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
