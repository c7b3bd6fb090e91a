package dto

import (
	"time"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
	"github.com/rafabene/chatconvite-backend/internal/domain/repositories"
)

// MessageResponse representa uma mensagem do histórico com o perfil
// público do autor
type MessageResponse struct {
	ID        uint             `json:"id"`
	Text      string           `json:"text"`
	User      entities.Profile `json:"user"`
	Timestamp time.Time        `json:"timestamp"`
}

// MessagesEnvelope embrulha o histórico no envelope de sucesso
type MessagesEnvelope struct {
	Success  bool              `json:"success"`
	Messages []MessageResponse `json:"messages"`
}

// ToMessageResponse converte uma mensagem+autor em MessageResponse
func ToMessageResponse(m *repositories.MessageWithAuthor) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Text:      m.Text,
		User:      m.Author,
		Timestamp: m.Message.Timestamp,
	}
}

// ToMessageResponses converte o histórico completo
func ToMessageResponses(messages []*repositories.MessageWithAuthor) []MessageResponse {
	responses := make([]MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = ToMessageResponse(m)
	}
	return responses
}
