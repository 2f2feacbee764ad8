package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

// TokenManager выпускает access токены и восстанавливает по ним пользователя.
type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(secret string, accessTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue подписывает HS256 токен с sub = id пользователя и его ролью.
func (m *TokenManager) Issue(user *entity.User) (string, error) {
	now := m.now()
	claims := accessClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токен")
	}
	return signed, nil
}

// Resolve проверяет подпись и срок действия и возвращает участника.
func (m *TokenManager) Resolve(token string) (entity.Actor, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return entity.Actor{}, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "срок действия токена истёк")
		}
		return entity.Actor{}, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "токен невалиден")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return entity.Actor{}, apperror.New(apperror.ErrCodeUnauthorized, "токен невалиден")
	}
	role, err := valueobject.ParseRole(claims.Role)
	if err != nil {
		return entity.Actor{}, apperror.New(apperror.ErrCodeUnauthorized, "в токене неизвестная роль")
	}

	return entity.Actor{UserID: userID, Role: role}, nil
}
