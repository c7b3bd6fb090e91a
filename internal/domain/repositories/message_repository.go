package repositories

import (
	"context"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
)

// MessageWithAuthor junta uma mensagem ao perfil público do autor
type MessageWithAuthor struct {
	entities.Message
	Author entities.Profile
}

// MessageRepository define a interface para persistência de mensagens
type MessageRepository interface {
	Create(ctx context.Context, message *entities.Message) error

	// ListRecentWithAuthor retorna as `limit` mensagens mais recentes
	// cujo autor ainda existe (inner join), em ordem cronológica
	// crescente (mais antiga primeiro)
	ListRecentWithAuthor(ctx context.Context, limit int) ([]*MessageWithAuthor, error)
}
