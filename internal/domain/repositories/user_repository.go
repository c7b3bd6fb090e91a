package repositories

import (
	"context"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
)

// UserWithCount anota um usuário com a contagem de mensagens enviadas,
// usada na listagem administrativa
type UserWithCount struct {
	entities.User
	MessageCount int64
}

// UserRepository define a interface para persistência de usuários.
// FindByID retorna (nil, nil) quando o usuário não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	ListWithMessageCount(ctx context.Context) ([]*UserWithCount, error)
	SetBanned(ctx context.Context, id uint, banned bool) error
	SetRole(ctx context.Context, id uint, role entities.Role) error
	HasAdmin(ctx context.Context) (bool, error)
}
