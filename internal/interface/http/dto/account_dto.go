package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

type RegisterRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	BankCardNumber string `json:"bank_card_number" binding:"required"`
	Role           string `json:"role" binding:"required,oneof=student teacher"`
	Description    string `json:"description"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EditProfileRequest: пустые поля не меняются.
type EditProfileRequest struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	BankCardNumber string `json:"bank_card_number"`
	Description    string `json:"description"`
	Password       string `json:"password"`
}

type ValidateContactRequest struct {
	Text string `json:"text"`
}

type ValidateContactResponse struct {
	ContainsContactInfo bool `json:"contains_contact_info"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token,omitempty"`
}

// ReviewAcceptedResponse возвращается, когда запрос ушёл на проверку модератору.
type ReviewAcceptedResponse struct {
	ReviewID uuid.UUID `json:"review_id"`
	Status   string    `json:"status"`
}

func ToUserResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
	}
	if user.Teacher != nil {
		d := user.Teacher.Description
		resp.Description = &d
	}
	return resp
}
