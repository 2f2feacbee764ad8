package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type Post struct {
	ID          uuid.UUID
	StudentID   uuid.UUID
	WorkType    string
	SubjectArea string
	Institution string
	Description string
	Price       float64
	Status      valueobject.PostStatus
	CreatedAt   time.Time
}

func NewPost(studentID uuid.UUID, workType, subjectArea, institution, description string, price float64) (*Post, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "описание обязательно")
	}
	p, err := valueobject.NewPrice(price)
	if err != nil {
		return nil, err
	}

	return &Post{
		ID:          uuid.New(),
		StudentID:   studentID,
		WorkType:    workType,
		SubjectArea: subjectArea,
		Institution: institution,
		Description: description,
		Price:       p,
		Status:      valueobject.PostStatusOpen,
		CreatedAt:   Now(),
	}, nil
}

func (p *Post) IsOwnedBy(userID uuid.UUID) bool {
	return p.StudentID == userID
}

func (p *Post) IsOpen() bool {
	return p.Status == valueobject.PostStatusOpen
}

// RaisePrice допускает только повышение цены открытого поста.
func (p *Post) RaisePrice(price float64) error {
	if !p.IsOpen() {
		return apperror.ErrPostClosed
	}
	newPrice, err := valueobject.NewPrice(price)
	if err != nil {
		return err
	}
	if newPrice < p.Price {
		return apperror.ErrPriceDecrease
	}
	p.Price = newPrice
	return nil
}

// Edit меняет описание и учебное заведение. Пустые значения оставляют поле как есть.
func (p *Post) Edit(description, institution string) error {
	if !p.IsOpen() {
		return apperror.ErrPostClosed
	}
	if d := strings.TrimSpace(description); d != "" {
		p.Description = d
	}
	if institution != "" {
		p.Institution = institution
	}
	return nil
}
