package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/docexchange-backend/internal/interface/http/dto"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/response"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/complaint"
)

type ComplaintHandler struct {
	createUC         *complaint.CreateComplaintUseCase
	getMineUC        *complaint.GetMyComplaintUseCase
	listUC           *complaint.ListComplaintsUseCase
	assignUC         *complaint.AssignComplaintUseCase
	updateStatusUC   *complaint.UpdateComplaintStatusUseCase
	deleteUC         *complaint.DeleteComplaintUseCase
	fileDocumentUC   *complaint.FileDocumentComplaintUseCase
	listDocumentUC   *complaint.ListDocumentComplaintsUseCase
	deleteDocumentUC *complaint.DeleteDocumentComplaintUseCase
}

func NewComplaintHandler(
	createUC *complaint.CreateComplaintUseCase,
	getMineUC *complaint.GetMyComplaintUseCase,
	listUC *complaint.ListComplaintsUseCase,
	assignUC *complaint.AssignComplaintUseCase,
	updateStatusUC *complaint.UpdateComplaintStatusUseCase,
	deleteUC *complaint.DeleteComplaintUseCase,
	fileDocumentUC *complaint.FileDocumentComplaintUseCase,
	listDocumentUC *complaint.ListDocumentComplaintsUseCase,
	deleteDocumentUC *complaint.DeleteDocumentComplaintUseCase,
) *ComplaintHandler {
	return &ComplaintHandler{
		createUC:         createUC,
		getMineUC:        getMineUC,
		listUC:           listUC,
		assignUC:         assignUC,
		updateStatusUC:   updateStatusUC,
		deleteUC:         deleteUC,
		fileDocumentUC:   fileDocumentUC,
		listDocumentUC:   listDocumentUC,
		deleteDocumentUC: deleteDocumentUC,
	}
}

// Create обрабатывает POST /api/deals/:id/complaints.
func (h *ComplaintHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	dealID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ComplaintRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), actor, dealID, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToComplaintResponse(created))
}

func (h *ComplaintHandler) GetMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	dealID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.getMineUC.Execute(c.Request.Context(), actor, dealID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToComplaintResponse(found))
}

// List обрабатывает GET /api/moderation/complaints?scope=mine|unassigned&status=&plaintiff_role=&sort=asc|desc.
func (h *ComplaintHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	items, err := h.listUC.Execute(c.Request.Context(), actor, complaint.ListComplaintsQuery{
		Scope:         c.Query("scope"),
		Status:        c.Query("status"),
		PlaintiffRole: c.Query("plaintiff_role"),
		Sort:          c.Query("sort"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToComplaintResponses(items))
}

func (h *ComplaintHandler) Assign(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assigned, err := h.assignUC.Execute(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToComplaintResponse(assigned))
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ComplaintStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.updateStatusUC.Execute(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToComplaintResponse(updated))
}

func (h *ComplaintHandler) Delete(c *gin.Context) {
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

// FileDocument обрабатывает POST /api/documents/:id/complaints.
func (h *ComplaintHandler) FileDocument(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ComplaintRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.fileDocumentUC.Execute(c.Request.Context(), actor, documentID, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToDocumentComplaintResponse(created))
}

func (h *ComplaintHandler) ListDocument(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	items, err := h.listDocumentUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDocumentComplaintResponses(items))
}

func (h *ComplaintHandler) DeleteDocument(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteDocumentUC.Execute(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
