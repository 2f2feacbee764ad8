package valueobject

import (
	"strings"

	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleTeacher   Role = "teacher"
	RoleModerator Role = "moderator"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleModerator:
		return true
	}
	return false
}

// IsParty сообщает, может ли роль участвовать в переговорах.
func (r Role) IsParty() bool {
	return r == RoleStudent || r == RoleTeacher
}

// Opposite возвращает противоположную сторону переговоров. Для модератора пусто.
func (r Role) Opposite() Role {
	switch r {
	case RoleStudent:
		return RoleTeacher
	case RoleTeacher:
		return RoleStudent
	}
	return ""
}

func ParseRole(role string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректная роль пользователя")
	}
	return r, nil
}

// ParsePartyRole принимает только student и teacher: модератора нельзя зарегистрировать.
func ParsePartyRole(role string) (Role, error) {
	r, err := ParseRole(role)
	if err != nil {
		return "", err
	}
	if !r.IsParty() {
		return "", apperror.New(apperror.ErrCodeValidation, "роль должна быть student или teacher")
	}
	return r, nil
}
