package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
	"github.com/rafabene/chatconvite-backend/internal/domain/repositories"
)

// MessageRepository implementa repositories.MessageRepository
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository cria um novo MessageRepository
func NewMessageRepository(db *gorm.DB) repositories.MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *entities.Message) error {
	model := &MessageModel{
		UserID: message.UserID,
		Text:   message.Text,
	}

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	message.ID = model.ID
	message.Timestamp = model.Timestamp
	return nil
}

// messageWithAuthorRow é a linha projetada do histórico
type messageWithAuthorRow struct {
	ID          uint
	UserID      uint
	Text        string
	Timestamp   time.Time
	Nickname    string
	TgUsername  string
	Role        string
	AvatarColor string
}

func (r *MessageRepository) ListRecentWithAuthor(ctx context.Context, limit int) ([]*repositories.MessageWithAuthor, error) {
	var rows []messageWithAuthorRow

	// Inner join: mensagens órfãs (autor removido) ficam invisíveis
	// no histórico, mas permanecem armazenadas
	db := r.getDB(ctx)
	err := db.WithContext(ctx).
		Table("messages").
		Select("messages.id, messages.user_id, messages.text, messages.timestamp, users.nickname, users.tg_username, users.role, users.avatar_color").
		Joins("JOIN users ON users.id = messages.user_id").
		Order("messages.timestamp DESC, messages.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Inverter para ordem cronológica crescente (mais antiga primeiro)
	result := make([]*repositories.MessageWithAuthor, len(rows))
	for i, row := range rows {
		result[len(rows)-1-i] = &repositories.MessageWithAuthor{
			Message: entities.Message{
				ID:        row.ID,
				UserID:    row.UserID,
				Text:      row.Text,
				Timestamp: row.Timestamp,
			},
			Author: entities.Profile{
				ID:          row.UserID,
				Nickname:    row.Nickname,
				TgUsername:  row.TgUsername,
				Role:        row.Role,
				AvatarColor: row.AvatarColor,
			},
		}
	}

	return result, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *MessageRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
