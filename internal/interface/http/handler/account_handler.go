package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/dto"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/response"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/account"
)

type AccountHandler struct {
	registerUC    *account.RegisterUseCase
	loginUC       *account.LoginUseCase
	getProfileUC  *account.GetProfileUseCase
	editProfileUC *account.EditProfileUseCase
	deleteUC      *account.DeleteAccountUseCase
}

func NewAccountHandler(
	registerUC *account.RegisterUseCase,
	loginUC *account.LoginUseCase,
	getProfileUC *account.GetProfileUseCase,
	editProfileUC *account.EditProfileUseCase,
	deleteUC *account.DeleteAccountUseCase,
) *AccountHandler {
	return &AccountHandler{
		registerUC:    registerUC,
		loginUC:       loginUC,
		getProfileUC:  getProfileUC,
		editProfileUC: editProfileUC,
		deleteUC:      deleteUC,
	}
}

// Register обрабатывает POST /api/auth/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.registerUC.Execute(c.Request.Context(), account.RegisterCommand{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		PhoneNumber:    req.PhoneNumber,
		BankCardNumber: req.BankCardNumber,
		Role:           req.Role,
		Description:    req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if res.Review != nil {
		response.Accepted(c, dto.ReviewAccepted(res.Review.ID))
		return
	}

	response.Created(c, dto.AuthResponse{User: dto.ToUserResponse(res.User), AccessToken: res.Token})
}

// Login обрабатывает POST /api/auth/login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.loginUC.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.AuthResponse{User: dto.ToUserResponse(res.User), AccessToken: res.Token})
}

func (h *AccountHandler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := h.getProfileUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUserResponse(user))
}

// EditProfile обрабатывает PATCH /api/users/:id. Править чужой профиль может только модератор.
func (h *AccountHandler) EditProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.EditProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.editProfileUC.Execute(c.Request.Context(), account.EditProfileCommand{
		Actor:          actor,
		UserID:         userID,
		FullName:       req.FullName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		BankCardNumber: req.BankCardNumber,
		Description:    req.Description,
		Password:       req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if res.Review != nil {
		response.Accepted(c, dto.ReviewAccepted(res.Review.ID))
		return
	}

	response.Success(c, dto.ToUserResponse(res.User))
}

// DeleteMe обрабатывает DELETE /api/users/me.
func (h *AccountHandler) DeleteMe(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actor); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// TextHandler проверяет произвольный текст на контактные данные до отправки формы.
type TextHandler struct {
	scanner repository.ContactScanner
}

func NewTextHandler(scanner repository.ContactScanner) *TextHandler {
	return &TextHandler{scanner: scanner}
}

func (h *TextHandler) ValidateContact(c *gin.Context) {
	var req dto.ValidateContactRequest
	if !bindJSON(c, &req) {
		return
	}
	response.Success(c, dto.ValidateContactResponse{ContainsContactInfo: h.scanner.ContainsContactInfo(req.Text)})
}
