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

// AuthHandler lida com a sondagem de invite codes, registro e
// consulta de perfil público
type AuthHandler struct {
	registration *services.RegistrationService
	users        *services.UserService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(registration *services.RegistrationService, users *services.UserService) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		users:        users,
	}
}

// CheckCode sonda um invite code sem consumi-lo.
// Código inválido/consumido responde 200 com success:false, seguindo
// o contrato do cliente.
func (h *AuthHandler) CheckCode(c *gin.Context) {
	var req dto.CheckCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Fail(c, http.StatusBadRequest, "error.missing_fields")
		return
	}

	result, err := h.registration.CheckCode(c.Request.Context(), req.Code)
	if err != nil {
		dto.Internal(c)
		return
	}

	if !result.Redeemable {
		dto.Fail(c, http.StatusOK, "error.code_not_usable")
		return
	}

	c.JSON(http.StatusOK, dto.CheckCodeResponse{
		Success: true,
		CodeID:  result.CodeID,
	})
}

// Register cria um usuário resgatando um invite code
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Fail(c, http.StatusBadRequest, "error.missing_fields")
		return
	}

	user, err := h.registration.Register(c.Request.Context(), services.RegisterInput{
		Nickname:   req.Nickname,
		TgUsername: req.TgUsername,
		CodeID:     req.CodeID,
	})
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrMissingFields),
			errs.Is(err, errors.ErrCodeNotFound),
			errs.Is(err, errors.ErrCodeConsumed):
			dto.FailFromError(c, http.StatusBadRequest, err)
		default:
			dto.Internal(c)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewUserEnvelope(user.Profile()))
}

// GetUser busca o perfil público de um usuário por ID
func (h *AuthHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		dto.Fail(c, http.StatusBadRequest, "error.user_not_found")
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), uint(id))
	if err != nil {
		if errs.Is(err, errors.ErrUserNotFound) {
			dto.FailFromError(c, http.StatusNotFound, err)
			return
		}
		dto.Internal(c)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserEnvelope(*profile))
}
