package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"academy/services"

	"github.com/gin-gonic/gin"
)

func tokenWithRole(t *testing.T, userID uint, role int) string {
	t.Helper()
	token, err := services.GenerateToken(services.UserInfo{
		UserId: userID,
		Role:   role,
		Active: true,
	}, 60, true)
	if err != nil {
		t.Fatalf("GenerateToken() falhou: %v", err)
	}
	return token
}

func protectedRouter(roles ...int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/protegida", AuthMiddleware(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestAuthMiddlewareAllowedRoles(t *testing.T) {
	// a rodada de desativação é liberada para admin e instrutor, nunca aluno
	router := protectedRouter(1, 2)

	tests := []struct {
		name     string
		role     int
		wantCode int
	}{
		{"admin passa", 1, http.StatusOK},
		{"instrutor passa", 2, http.StatusOK},
		{"aluno e barrado", 3, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/protegida", nil)
			req.Header.Set("Authorization", "Bearer "+tokenWithRole(t, 7, tt.role))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, esperado %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestAuthMiddlewareWithoutToken(t *testing.T) {
	router := protectedRouter(1, 2)

	t.Run("sem header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protegida", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, esperado 401", w.Code)
		}
	})

	t.Run("token ilegivel", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protegida", nil)
		req.Header.Set("Authorization", "Bearer abc.def")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, esperado 401", w.Code)
		}
	})
}

func TestAuthMiddlewareWithoutRolesOnlyAuthenticates(t *testing.T) {
	router := protectedRouter()

	req := httptest.NewRequest(http.MethodPost, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+tokenWithRole(t, 7, 3))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, esperado 200", w.Code)
	}
}
