package repository

import (
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

// ContactScanner ищет в тексте контактные данные.
type ContactScanner interface {
	ContainsContactInfo(text string) bool
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(user *entity.User) (string, error)
}

type IdentityResolver interface {
	Resolve(token string) (entity.Actor, error)
}
