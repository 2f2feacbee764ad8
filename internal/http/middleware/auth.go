package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/response"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

// AuthMiddleware проверяет Bearer токен и кладёт в контекст пользователя и роль.
func AuthMiddleware(resolver repository.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, "требуется авторизация")
			return
		}

		actor, err := resolver.Resolve(strings.TrimPrefix(auth, "Bearer "))
		if err != nil || actor.UserID == uuid.Nil {
			response.Unauthorized(c, "токен невалиден")
			return
		}

		c.Set(ContextUserIDKey, actor.UserID)
		c.Set(ContextRoleKey, actor.Role)
		c.Next()
	}
}

// ActorFrom возвращает пользователя, положенного AuthMiddleware.
func ActorFrom(c *gin.Context) (entity.Actor, bool) {
	rawID, ok := c.Get(ContextUserIDKey)
	if !ok {
		return entity.Actor{}, false
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return entity.Actor{}, false
	}
	role, _ := c.Get(ContextRoleKey)
	r, ok := role.(valueobject.Role)
	if !ok || !r.IsValid() {
		return entity.Actor{}, false
	}
	return entity.Actor{UserID: userID, Role: r}, true
}
