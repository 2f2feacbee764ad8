package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type stubResolver struct {
	actor entity.Actor
	err   error
}

func (s stubResolver) Resolve(string) (entity.Actor, error) {
	return s.actor, s.err
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/items/:id", handlers...)
	return r
}

func serve(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_PutsActorIntoContext(t *testing.T) {
	want := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleTeacher}
	var got entity.Actor
	r := newEngine(AuthMiddleware(stubResolver{actor: want}), func(c *gin.Context) {
		var ok bool
		got, ok = ActorFrom(c)
		require.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := serve(r, "/items/"+uuid.NewString(), "Bearer token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, want, got)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		resolver stubResolver
	}{
		{"без заголовка", "", stubResolver{}},
		{"не bearer", "Basic abc", stubResolver{}},
		{"ошибка токена", "Bearer bad", stubResolver{err: errors.New("expired")}},
		{"пустой пользователь", "Bearer ok", stubResolver{actor: entity.Actor{Role: valueobject.RoleStudent}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			r := newEngine(AuthMiddleware(tt.resolver), func(c *gin.Context) { called = true })

			w := serve(r, "/items/"+uuid.NewString(), tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), string(apperror.ErrCodeUnauthorized))
			assert.False(t, called)
		})
	}
}

func TestActorFrom_MissingValues(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := ActorFrom(c)
	assert.False(t, ok)

	c.Set(ContextUserIDKey, uuid.New())
	c.Set(ContextRoleKey, valueobject.Role("admin"))
	_, ok = ActorFrom(c)
	assert.False(t, ok)
}

func TestUUIDValidator(t *testing.T) {
	r := newEngine(UUIDValidator("id"), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "/items/"+uuid.NewString(), "").Code)

	w := serve(r, "/items/42", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), string(apperror.ErrCodeBadRequest))
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), string(apperror.ErrCodeInternal))
	assert.NotContains(t, w.Body.String(), "boom")
}
