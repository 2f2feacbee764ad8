package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/docexchange-backend/internal/interface/http/dto"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/response"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/negotiation"
)

type NegotiationHandler struct {
	respondUC        *negotiation.RespondToPostUseCase
	counterOfferUC   *negotiation.CounterOfferUseCase
	postThreadsUC    *negotiation.ListPostThreadsUseCase
	teacherThreadsUC *negotiation.ListTeacherThreadsUseCase
}

func NewNegotiationHandler(
	respondUC *negotiation.RespondToPostUseCase,
	counterOfferUC *negotiation.CounterOfferUseCase,
	postThreadsUC *negotiation.ListPostThreadsUseCase,
	teacherThreadsUC *negotiation.ListTeacherThreadsUseCase,
) *NegotiationHandler {
	return &NegotiationHandler{
		respondUC:        respondUC,
		counterOfferUC:   counterOfferUC,
		postThreadsUC:    postThreadsUC,
		teacherThreadsUC: teacherThreadsUC,
	}
}

// Respond обрабатывает POST /api/posts/:id/responses: преподаватель открывает цепочку.
func (h *NegotiationHandler) Respond(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PriceRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.respondUC.Execute(c.Request.Context(), actor, postID, req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToOfferResponse(r))
}

// CounterOffer обрабатывает POST /api/responses/:id/counter-offers.
func (h *NegotiationHandler) CounterOffer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PriceRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.counterOfferUC.Execute(c.Request.Context(), negotiation.CounterOfferCommand{
		Actor:    actor,
		TargetID: targetID,
		Price:    req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToOfferResponse(r))
}

func (h *NegotiationHandler) PostThreads(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	threads, err := h.postThreadsUC.Execute(c.Request.Context(), actor, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToThreadResponses(threads))
}

func (h *NegotiationHandler) TeacherThreads(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	threads, err := h.teacherThreadsUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToThreadResponses(threads))
}
