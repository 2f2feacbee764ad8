package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
)

// TeacherProfile - поля, которые есть только у преподавателя.
type TeacherProfile struct {
	Description string
}

type User struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	PasswordHash   string
	PhoneNumber    string
	BankCardNumber string
	Role           valueobject.Role
	Teacher        *TeacherProfile
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewUser(fullName, email, passwordHash, phone, bankCard string, role valueobject.Role, description string) *User {
	now := Now()
	u := &User{
		ID:             uuid.New(),
		FullName:       fullName,
		Email:          email,
		PasswordHash:   passwordHash,
		PhoneNumber:    phone,
		BankCardNumber: bankCard,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if role == valueobject.RoleTeacher {
		u.Teacher = &TeacherProfile{Description: description}
	}
	return u
}

func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

func (u *User) Description() string {
	if u.Teacher == nil {
		return ""
	}
	return u.Teacher.Description
}

// Actor - аутентифицированный пользователь, от имени которого выполняется операция.
type Actor struct {
	UserID uuid.UUID
	Role   valueobject.Role
}

func (a Actor) IsModerator() bool {
	return a.Role == valueobject.RoleModerator
}

func (a Actor) IsStudent() bool {
	return a.Role == valueobject.RoleStudent
}

func (a Actor) IsTeacher() bool {
	return a.Role == valueobject.RoleTeacher
}
