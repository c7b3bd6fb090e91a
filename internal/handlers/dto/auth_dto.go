package dto

import (
	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
)

// CheckCodeRequest representa a sondagem de um invite code
type CheckCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// CheckCodeResponse confirma que o código é resgatável
type CheckCodeResponse struct {
	Success bool `json:"success"`
	CodeID  uint `json:"codeId"`
}

// RegisterRequest representa a requisição de registro via invite code
type RegisterRequest struct {
	Nickname   string `json:"nickname" binding:"required,max=100"`
	TgUsername string `json:"tgUsername" binding:"required,max=100"`
	CodeID     uint   `json:"codeId" binding:"required"`
}

// UserEnvelope embrulha um perfil público no envelope de sucesso
type UserEnvelope struct {
	Success bool             `json:"success"`
	User    entities.Profile `json:"user"`
}

// NewUserEnvelope monta a resposta de sucesso com o perfil público
func NewUserEnvelope(profile entities.Profile) UserEnvelope {
	return UserEnvelope{
		Success: true,
		User:    profile,
	}
}
