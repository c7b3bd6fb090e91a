package http

import (
	errs "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/chatconvite-backend/internal/domain/errors"
	"github.com/rafabene/chatconvite-backend/internal/handlers/dto"
	"github.com/rafabene/chatconvite-backend/internal/services"
)

// AdminHandler lida com as operações administrativas.
// A identidade atuante vem no corpo (POST) ou em ?adminId= (GET);
// o guard de papel fica no AdminService.
type AdminHandler struct {
	admin *services.AdminService
}

// NewAdminHandler cria um novo AdminHandler
func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// GenerateCode cria um novo invite code e devolve o literal
func (h *AdminHandler) GenerateCode(c *gin.Context) {
	var req dto.GenerateCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Fail(c, http.StatusBadRequest, "error.missing_fields")
		return
	}

	code, err := h.admin.GenerateCode(c.Request.Context(), req.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateCodeResponse{
		Success: true,
		Code:    code,
	})
}

// ListCodes lista todos os invite codes, mais recentes primeiro
func (h *AdminHandler) ListCodes(c *gin.Context) {
	adminID, ok := h.adminIDFromQuery(c)
	if !ok {
		return
	}

	codes, err := h.admin.ListCodes(c.Request.Context(), adminID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CodesEnvelope{
		Success: true,
		Codes:   dto.ToInviteCodeResponses(codes),
	})
}

// ListUsers lista todos os usuários com contagem de mensagens
func (h *AdminHandler) ListUsers(c *gin.Context) {
	adminID, ok := h.adminIDFromQuery(c)
	if !ok {
		return
	}

	users, err := h.admin.ListUsers(c.Request.Context(), adminID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UsersEnvelope{
		Success: true,
		Users:   dto.ToAdminUserResponses(users),
	})
}

// SetUserStatus aplica ban, unban ou promote ao usuário alvo
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	var req dto.SetUserStatusRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Fail(c, http.StatusBadRequest, "error.missing_fields")
		return
	}

	err := h.admin.SetUserStatus(c.Request.Context(), req.AdminID, req.UserID, req.Action)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true})
}

// adminIDFromQuery extrai ?adminId= ou responde 403
func (h *AdminHandler) adminIDFromQuery(c *gin.Context) (uint, bool) {
	adminID, err := strconv.ParseUint(c.Query("adminId"), 10, 32)
	if err != nil {
		dto.Fail(c, http.StatusForbidden, "error.forbidden")
		return 0, false
	}
	return uint(adminID), true
}

// fail traduz erros das operações administrativas para o status
// adequado
func (h *AdminHandler) fail(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errors.ErrForbidden):
		dto.FailFromError(c, http.StatusForbidden, err)
	case errs.Is(err, errors.ErrUnknownAction):
		dto.FailFromError(c, http.StatusBadRequest, err)
	default:
		dto.Internal(c)
	}
}
