package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/docexchange-backend/internal/interface/http/dto"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/response"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/post"
)

type PostHandler struct {
	createUC     *post.CreatePostUseCase
	editUC       *post.EditPostUseCase
	raisePriceUC *post.RaisePriceUseCase
	deleteUC     *post.DeletePostUseCase
	getUC        *post.GetPostUseCase
	listMineUC   *post.ListMyPostsUseCase
	listOpenUC   *post.ListOpenPostsUseCase
}

func NewPostHandler(
	createUC *post.CreatePostUseCase,
	editUC *post.EditPostUseCase,
	raisePriceUC *post.RaisePriceUseCase,
	deleteUC *post.DeletePostUseCase,
	getUC *post.GetPostUseCase,
	listMineUC *post.ListMyPostsUseCase,
	listOpenUC *post.ListOpenPostsUseCase,
) *PostHandler {
	return &PostHandler{
		createUC:     createUC,
		editUC:       editUC,
		raisePriceUC: raisePriceUC,
		deleteUC:     deleteUC,
		getUC:        getUC,
		listMineUC:   listMineUC,
		listOpenUC:   listOpenUC,
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), post.CreatePostCommand{
		Actor:       actor,
		WorkType:    req.WorkType,
		SubjectArea: req.SubjectArea,
		Institution: req.Institution,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if res.Review != nil {
		response.Accepted(c, dto.ReviewAccepted(res.Review.ID))
		return
	}

	response.Created(c, dto.ToPostResponse(res.Post))
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPostResponse(p))
}

func (h *PostHandler) ListMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	posts, err := h.listMineUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPostResponses(posts))
}

// ListOpen обрабатывает GET /api/posts: лента открытых постов с фильтрами.
func (h *PostHandler) ListOpen(c *gin.Context) {
	var q dto.OpenPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "некорректные параметры фильтра")
		return
	}

	posts, err := h.listOpenUC.Execute(c.Request.Context(), post.ListOpenPostsQuery{
		Institution: q.Institution,
		SubjectArea: q.SubjectArea,
		PriceMin:    q.PriceMin,
		PriceMax:    q.PriceMax,
		Sort:        q.Sort,
		Order:       q.Order,
		Offset:      q.Offset,
		Limit:       q.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPostResponses(posts))
}

func (h *PostHandler) Edit(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.EditPostRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.editUC.Execute(c.Request.Context(), post.EditPostCommand{
		Actor:       actor,
		PostID:      id,
		Description: req.Description,
		Institution: req.Institution,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if res.Review != nil {
		response.Accepted(c, dto.ReviewAccepted(res.Review.ID))
		return
	}

	response.Success(c, dto.ToPostResponse(res.Post))
}

func (h *PostHandler) RaisePrice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PriceRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.raisePriceUC.Execute(c.Request.Context(), actor, id, req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPostResponse(p))
}

// Delete: автор удаляет пост без сделки, модератор закрывает любой открытый.
func (h *PostHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
