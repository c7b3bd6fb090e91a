package repositories

import (
	"context"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
)

// CodeWithConsumer anota um invite code com o nickname de quem o
// consumiu (nil enquanto não consumido ou se o consumidor sumiu)
type CodeWithConsumer struct {
	entities.InviteCode
	UsedByNickname *string
}

// InviteCodeRepository define a interface para persistência de invite codes.
// FindByCode e FindByID retornam (nil, nil) quando o código não existe.
type InviteCodeRepository interface {
	Create(ctx context.Context, code *entities.InviteCode) error
	FindByCode(ctx context.Context, code string) (*entities.InviteCode, error)
	FindByID(ctx context.Context, id uint) (*entities.InviteCode, error)

	// Redeem marca o código como consumido de forma condicional
	// (UPDATE ... WHERE is_active AND used_by IS NULL) e retorna se
	// alguma linha foi afetada. É a barreira contra resgate duplo.
	Redeem(ctx context.Context, codeID, userID uint) (bool, error)

	ListWithConsumer(ctx context.Context) ([]*CodeWithConsumer, error)
}
