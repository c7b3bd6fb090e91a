package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/chatconvite-backend/internal/handlers/dto"
	"github.com/rafabene/chatconvite-backend/internal/services"
)

// MessageHandler lida com a leitura do histórico via HTTP
type MessageHandler struct {
	chat *services.ChatService
}

// NewMessageHandler cria um novo MessageHandler
func NewMessageHandler(chat *services.ChatService) *MessageHandler {
	return &MessageHandler{chat: chat}
}

// ListMessages retorna as mensagens mais recentes, mais antiga
// primeiro, com o perfil público do autor
func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.chat.History(c.Request.Context(), services.DefaultHistoryLimit)
	if err != nil {
		dto.Internal(c)
		return
	}

	c.JSON(http.StatusOK, dto.MessagesEnvelope{
		Success:  true,
		Messages: dto.ToMessageResponses(messages),
	})
}
