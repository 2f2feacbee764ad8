package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
)

// ProfileError - регистрация или правка профиля, задержанная из-за контактов в тексте.
// TargetProfileID == nil означает заявку на новый аккаунт.
type ProfileError struct {
	ID              uuid.UUID
	TargetProfileID *uuid.UUID
	FullName        string
	Email           string
	PasswordHash    string
	PhoneNumber     string
	BankCardNumber  string
	Role            valueobject.Role
	Description     string
	Status          valueobject.ReviewStatus
	CreatedAt       time.Time
}

func (e *ProfileError) IsNewAccount() bool {
	return e.TargetProfileID == nil
}

// PostError - создание или правка поста, задержанная из-за контактов в описании.
// PostID != nil означает правку существующего поста.
type PostError struct {
	ID          uuid.UUID
	PostID      *uuid.UUID
	StudentID   uuid.UUID
	WorkType    string
	SubjectArea string
	Institution string
	Description string
	Price       float64
	Status      valueobject.ReviewStatus
	CreatedAt   time.Time
}

func (e *PostError) ExistingPost() bool {
	return e.PostID != nil
}

func NewProfileError(target *uuid.UUID) *ProfileError {
	return &ProfileError{
		ID:              uuid.New(),
		TargetProfileID: target,
		Status:          valueobject.ReviewStatusReview,
		CreatedAt:       Now(),
	}
}

func NewPostError(postID *uuid.UUID, studentID uuid.UUID) *PostError {
	return &PostError{
		ID:        uuid.New(),
		PostID:    postID,
		StudentID: studentID,
		Status:    valueobject.ReviewStatusReview,
		CreatedAt: Now(),
	}
}
