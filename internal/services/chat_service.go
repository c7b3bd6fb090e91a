package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
	"github.com/rafabene/chatconvite-backend/internal/domain/errors"
	"github.com/rafabene/chatconvite-backend/internal/domain/ports"
	"github.com/rafabene/chatconvite-backend/internal/domain/repositories"
)

// DefaultHistoryLimit é o tamanho padrão do histórico retornado
const DefaultHistoryLimit = 100

// OutgoingMessage é o envelope difundido a todos os clientes
// conectados quando uma mensagem é aceita.
// O timestamp é o relógio do servidor no momento da difusão, não o da
// linha gravada — podem divergir pela latência da escrita.
type OutgoingMessage struct {
	ID        uint             `json:"id"`
	Text      string           `json:"text"`
	User      entities.Profile `json:"user"`
	Timestamp time.Time        `json:"timestamp"`
}

// ChatService contém a lógica de envio de mensagens e histórico
type ChatService struct {
	users    repositories.UserRepository
	messages repositories.MessageRepository
	logger   ports.Logger
}

// NewChatService cria um novo ChatService
func NewChatService(
	users repositories.UserRepository,
	messages repositories.MessageRepository,
	logger ports.Logger,
) *ChatService {
	return &ChatService{
		users:    users,
		messages: messages,
		logger:   logger,
	}
}

// SendMessage valida, persiste e monta o envelope de difusão de uma
// mensagem. Retornos:
//   - (nil, nil): descarte silencioso (texto vazio ou autor ausente)
//   - (nil, ErrUserBanned): notificar apenas o remetente
//   - (envelope, nil): difundir a todos os conectados
func (s *ChatService) SendMessage(ctx context.Context, userID uint, rawText string) (*OutgoingMessage, error) {
	text := strings.TrimSpace(rawText)
	if text == "" || userID == 0 {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user != nil && user.IsBanned {
		return nil, errors.ErrUserBanned
	}

	message := &entities.Message{
		UserID: userID,
		Text:   text,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	// Autor não resolve (nunca existiu): descartar sem difundir.
	// A linha já gravada fica órfã e invisível no histórico.
	if user == nil {
		s.logger.Warn("message stored for unknown author, dropping broadcast",
			"user_id", userID,
			"message_id", message.ID,
		)
		return nil, nil
	}

	return &OutgoingMessage{
		ID:        message.ID,
		Text:      text,
		User:      user.Profile(),
		Timestamp: time.Now().UTC(),
	}, nil
}

// History retorna as mensagens mais recentes em ordem cronológica
// crescente, juntas ao perfil do autor. limit <= 0 usa o padrão.
func (s *ChatService) History(ctx context.Context, limit int) ([]*repositories.MessageWithAuthor, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.messages.ListRecentWithAuthor(ctx, limit)
}
