package dto

import (
	"time"

	"github.com/rafabene/chatconvite-backend/internal/domain/repositories"
)

// GenerateCodeRequest identifica o admin que pede um novo código
type GenerateCodeRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// GenerateCodeResponse devolve o literal do código gerado
type GenerateCodeResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
}

// SetUserStatusRequest representa a mutação administrativa de um
// usuário: ban, unban ou promote
type SetUserStatusRequest struct {
	AdminID uint   `json:"adminId" binding:"required"`
	UserID  uint   `json:"userId" binding:"required"`
	Action  string `json:"action" binding:"required"`
}

// InviteCodeResponse representa um invite code na listagem
// administrativa
type InviteCodeResponse struct {
	ID             uint       `json:"id"`
	Code           string     `json:"code"`
	CreatedBy      *uint      `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UsedBy         *uint      `json:"used_by"`
	UsedAt         *time.Time `json:"used_at"`
	IsActive       bool       `json:"is_active"`
	UsedByNickname *string    `json:"used_by_nickname"`
}

// CodesEnvelope embrulha a listagem de códigos
type CodesEnvelope struct {
	Success bool                 `json:"success"`
	Codes   []InviteCodeResponse `json:"codes"`
}

// AdminUserResponse representa um usuário na listagem administrativa,
// com a contagem de mensagens enviadas
type AdminUserResponse struct {
	ID           uint      `json:"id"`
	Nickname     string    `json:"nickname"`
	TgUsername   string    `json:"tg_username"`
	Role         string    `json:"role"`
	AvatarColor  string    `json:"avatar_color"`
	CreatedAt    time.Time `json:"created_at"`
	IsBanned     bool      `json:"is_banned"`
	MessageCount int64     `json:"message_count"`
}

// UsersEnvelope embrulha a listagem de usuários
type UsersEnvelope struct {
	Success bool                `json:"success"`
	Users   []AdminUserResponse `json:"users"`
}

// ToInviteCodeResponses converte a listagem de códigos
func ToInviteCodeResponses(codes []*repositories.CodeWithConsumer) []InviteCodeResponse {
	responses := make([]InviteCodeResponse, len(codes))
	for i, c := range codes {
		responses[i] = InviteCodeResponse{
			ID:             c.ID,
			Code:           c.Code,
			CreatedBy:      c.CreatedBy,
			CreatedAt:      c.CreatedAt,
			UsedBy:         c.UsedBy,
			UsedAt:         c.UsedAt,
			IsActive:       c.IsActive,
			UsedByNickname: c.UsedByNickname,
		}
	}
	return responses
}

// ToAdminUserResponses converte a listagem de usuários
func ToAdminUserResponses(users []*repositories.UserWithCount) []AdminUserResponse {
	responses := make([]AdminUserResponse, len(users))
	for i, u := range users {
		responses[i] = AdminUserResponse{
			ID:           u.ID,
			Nickname:     u.Nickname,
			TgUsername:   u.TgUsername,
			Role:         string(u.Role),
			AvatarColor:  u.AvatarColor,
			CreatedAt:    u.CreatedAt,
			IsBanned:     u.IsBanned,
			MessageCount: u.MessageCount,
		}
	}
	return responses
}
