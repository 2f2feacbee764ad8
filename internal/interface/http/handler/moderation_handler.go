package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/docexchange-backend/internal/interface/http/dto"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/response"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/moderation"
)

type ModerationHandler struct {
	listProfileUC   *moderation.ListProfileErrorsUseCase
	decideProfileUC *moderation.DecideProfileErrorUseCase
	listPostUC      *moderation.ListPostErrorsUseCase
	decidePostUC    *moderation.DecidePostErrorUseCase
}

func NewModerationHandler(
	listProfileUC *moderation.ListProfileErrorsUseCase,
	decideProfileUC *moderation.DecideProfileErrorUseCase,
	listPostUC *moderation.ListPostErrorsUseCase,
	decidePostUC *moderation.DecidePostErrorUseCase,
) *ModerationHandler {
	return &ModerationHandler{
		listProfileUC:   listProfileUC,
		decideProfileUC: decideProfileUC,
		listPostUC:      listPostUC,
		decidePostUC:    decidePostUC,
	}
}

func (h *ModerationHandler) ListProfileErrors(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	items, err := h.listProfileUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProfileErrorResponses(items))
}

// DecideProfileError обрабатывает POST /api/moderation/profile-errors/:id/decision.
func (h *ModerationHandler) DecideProfileError(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.DecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.decideProfileUC.Execute(c.Request.Context(), actor, id, req.Decision)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := dto.DecisionResponse{ReviewID: res.Item.ID, Status: string(res.Item.Status)}
	if res.User != nil {
		u := dto.ToUserResponse(res.User)
		out.User = &u
	}
	response.Success(c, out)
}

func (h *ModerationHandler) ListPostErrors(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	items, err := h.listPostUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPostErrorResponses(items))
}

func (h *ModerationHandler) DecidePostError(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.DecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.decidePostUC.Execute(c.Request.Context(), actor, id, req.Decision)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := dto.DecisionResponse{ReviewID: res.Item.ID, Status: string(res.Item.Status)}
	if res.Post != nil {
		p := dto.ToPostResponse(res.Post)
		out.Post = &p
	}
	response.Success(c, out)
}
