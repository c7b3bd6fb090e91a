package services

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
	"github.com/rafabene/chatconvite-backend/internal/domain/errors"
	"github.com/rafabene/chatconvite-backend/internal/domain/ports"
	"github.com/rafabene/chatconvite-backend/internal/domain/repositories"
	"github.com/rafabene/chatconvite-backend/internal/domain/valueobjects"
)

// avatarPalette é a paleta fixa de cores de avatar; uma cor é
// sorteada uniformemente a cada registro
var avatarPalette = []string{
	"#3498db",
	"#2ecc71",
	"#e74c3c",
	"#f39c12",
	"#9b59b6",
	"#1abc9c",
}

const defaultAvatarColor = "#3498db"

// RegistrationService contém a lógica de resgate de invite code e
// criação de usuários
type RegistrationService struct {
	users    repositories.UserRepository
	codes    repositories.InviteCodeRepository
	uow      ports.UnitOfWork
	logger   ports.Logger
	seedCode string
	randFn   func(n int) int
}

// NewRegistrationService cria um novo RegistrationService.
// seedCode é o código semeado no bootstrap cujo resgate concede admin.
func NewRegistrationService(
	users repositories.UserRepository,
	codes repositories.InviteCodeRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
	seedCode string,
) *RegistrationService {
	return &RegistrationService{
		users:    users,
		codes:    codes,
		uow:      uow,
		logger:   logger,
		seedCode: seedCode,
		randFn:   rand.IntN,
	}
}

// CheckCodeResult é o resultado da sondagem de um invite code
type CheckCodeResult struct {
	Redeemable bool
	CodeID     uint
}

// CheckCode verifica se um código pode ser resgatado, sem mutação.
// Resgatável sse o código existe, está ativo e não foi consumido.
func (s *RegistrationService) CheckCode(ctx context.Context, code string) (*CheckCodeResult, error) {
	invite, err := s.codes.FindByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}

	if invite == nil || !invite.IsRedeemable() {
		return &CheckCodeResult{Redeemable: false}, nil
	}

	return &CheckCodeResult{Redeemable: true, CodeID: invite.ID}, nil
}

// RegisterInput representa os dados para registrar um usuário
type RegisterInput struct {
	Nickname   string
	TgUsername string
	CodeID     uint
}

// Register cria um usuário resgatando um invite code.
// Criar o usuário e consumir o código acontecem numa única transação;
// o consumo é um UPDATE condicional, então dois registros concorrentes
// com o mesmo código nunca criam dois usuários.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	nickname := strings.TrimSpace(input.Nickname)
	tgUsername := strings.TrimSpace(input.TgUsername)

	if nickname == "" || tgUsername == "" || input.CodeID == 0 {
		return nil, errors.ErrMissingFields
	}

	invite, err := s.codes.FindByID(ctx, input.CodeID)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, errors.ErrCodeNotFound
	}

	// O código semeado no bootstrap concede o papel de admin
	role := entities.RoleUser
	if invite.Code == s.seedCode {
		role = entities.RoleAdmin
	}

	user := &entities.User{
		Nickname:    nickname,
		TgUsername:  tgUsername,
		Role:        role,
		AvatarColor: s.pickAvatarColor(),
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}

		redeemed, err := s.codes.Redeem(txCtx, invite.ID, user.ID)
		if err != nil {
			return err
		}
		if !redeemed {
			// Consumido por um registro concorrente entre o
			// CheckCode e este ponto; a transação desfaz o usuário
			return errors.ErrCodeConsumed
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"nickname", user.Nickname,
		"role", string(user.Role),
	)

	return user, nil
}

func (s *RegistrationService) pickAvatarColor() string {
	color, err := valueobjects.NewHexColor(avatarPalette[s.randFn(len(avatarPalette))])
	if err != nil {
		return defaultAvatarColor
	}
	return color.String()
}
