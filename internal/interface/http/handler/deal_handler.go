package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/interface/http/dto"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/response"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/deal"
)

type DealHandler struct {
	createUC   *deal.CreateDealUseCase
	finishUC   *deal.FinishDealUseCase
	feedbackUC *deal.LeaveFeedbackUseCase
	listMineUC *deal.ListMyDealsUseCase
	ratingUC   *deal.TeacherRatingUseCase
}

func NewDealHandler(
	createUC *deal.CreateDealUseCase,
	finishUC *deal.FinishDealUseCase,
	feedbackUC *deal.LeaveFeedbackUseCase,
	listMineUC *deal.ListMyDealsUseCase,
	ratingUC *deal.TeacherRatingUseCase,
) *DealHandler {
	return &DealHandler{
		createUC:   createUC,
		finishUC:   finishUC,
		feedbackUC: feedbackUC,
		listMineUC: listMineUC,
		ratingUC:   ratingUC,
	}
}

// Create обрабатывает POST /api/deals: студент принимает отклик преподавателя.
func (h *DealHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreateDealRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.createUC.Execute(c.Request.Context(), actor, uuid.MustParse(req.ResponseID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToDealResponse(d))
}

func (h *DealHandler) Finish(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	d, err := h.finishUC.Execute(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDealResponse(d))
}

func (h *DealHandler) Feedback(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.feedbackUC.Execute(c.Request.Context(), actor, id, req.Score)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDealResponse(d))
}

func (h *DealHandler) ListMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	deals, err := h.listMineUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDealResponses(deals))
}

// TeacherRating обрабатывает GET /api/teachers/:id/rating.
func (h *DealHandler) TeacherRating(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rating, err := h.ratingUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRatingResponse(rating))
}
