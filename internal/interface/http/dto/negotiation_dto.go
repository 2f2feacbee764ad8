package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/negotiation"
)

type OfferResponse struct {
	ID             uuid.UUID  `json:"id"`
	PostID         uuid.UUID  `json:"post_id"`
	RespondentID   uuid.UUID  `json:"respondent_id"`
	RespondentRole string     `json:"respondent_role"`
	Price          float64    `json:"price"`
	PrevResponseID *uuid.UUID `json:"prev_response_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ThreadResponse - цепочка от корневого отклика до последнего.
type ThreadResponse struct {
	RootID    uuid.UUID       `json:"root_id"`
	TeacherID uuid.UUID       `json:"teacher_id"`
	Responses []OfferResponse `json:"responses"`
}

func ToOfferResponse(r *entity.Response) OfferResponse {
	return OfferResponse{
		ID:             r.ID,
		PostID:         r.PostID,
		RespondentID:   r.RespondentID,
		RespondentRole: strings.ToUpper(string(r.RespondentRole)),
		Price:          r.Price,
		PrevResponseID: r.PrevResponseID,
		CreatedAt:      r.CreatedAt,
	}
}

func ToThreadResponses(threads []negotiation.Thread) []ThreadResponse {
	result := make([]ThreadResponse, 0, len(threads))
	for _, thread := range threads {
		root := thread.Root()
		if root == nil {
			continue
		}
		items := make([]OfferResponse, 0, len(thread))
		for _, r := range thread {
			items = append(items, ToOfferResponse(r))
		}
		result = append(result, ThreadResponse{RootID: root.ID, TeacherID: root.RespondentID, Responses: items})
	}
	return result
}
