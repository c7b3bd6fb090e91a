package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
	"github.com/rafabene/chatconvite-backend/internal/domain/errors"
	"github.com/rafabene/chatconvite-backend/internal/domain/ports"
	"github.com/rafabene/chatconvite-backend/internal/domain/repositories"
)

// Prefixo fixo dos códigos gerados por admins
const inviteCodePrefix = "INV-"

// Ações aceitas por SetUserStatus
const (
	ActionBan     = "ban"
	ActionUnban   = "unban"
	ActionPromote = "promote"
)

// AdminService contém as operações administrativas sobre usuários e
// invite codes. Todas exigem que a identidade atuante seja admin.
type AdminService struct {
	users       repositories.UserRepository
	codes       repositories.InviteCodeRepository
	userService *UserService
	logger      ports.Logger
}

// NewAdminService cria um novo AdminService
func NewAdminService(
	users repositories.UserRepository,
	codes repositories.InviteCodeRepository,
	userService *UserService,
	logger ports.Logger,
) *AdminService {
	return &AdminService{
		users:       users,
		codes:       codes,
		userService: userService,
		logger:      logger,
	}
}

// requireAdmin falha com ErrForbidden se a identidade atuante não for
// exatamente admin
func (s *AdminService) requireAdmin(ctx context.Context, actingUserID uint) error {
	isAdmin, err := s.userService.IsAdmin(ctx, actingUserID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return errors.ErrForbidden
	}
	return nil
}

// GenerateCode cria um novo invite code ativo e sem consumidor,
// atribuído ao admin atuante, e retorna o literal para distribuição
func (s *AdminService) GenerateCode(ctx context.Context, actingUserID uint) (string, error) {
	if err := s.requireAdmin(ctx, actingUserID); err != nil {
		return "", err
	}

	code := &entities.InviteCode{
		Code:      newInviteCode(),
		CreatedBy: &actingUserID,
		IsActive:  true,
	}

	if err := s.codes.Create(ctx, code); err != nil {
		return "", err
	}

	s.logger.Info("invite code generated",
		"code_id", code.ID,
		"created_by", actingUserID,
	)

	return code.Code, nil
}

// ListCodes lista todos os invite codes, mais recentes primeiro, com
// o nickname do consumidor quando houver
func (s *AdminService) ListCodes(ctx context.Context, actingUserID uint) ([]*repositories.CodeWithConsumer, error) {
	if err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}
	return s.codes.ListWithConsumer(ctx)
}

// ListUsers lista todos os usuários, mais recentes primeiro, cada um
// com a contagem de mensagens enviadas
func (s *AdminService) ListUsers(ctx context.Context, actingUserID uint) ([]*repositories.UserWithCount, error) {
	if err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}
	return s.users.ListWithMessageCount(ctx)
}

// SetUserStatus aplica exatamente uma mutação ao usuário alvo:
// ban, unban ou promote. Ação desconhecida é rejeitada.
func (s *AdminService) SetUserStatus(ctx context.Context, actingUserID, targetUserID uint, action string) error {
	if err := s.requireAdmin(ctx, actingUserID); err != nil {
		return err
	}

	var err error
	switch action {
	case ActionBan:
		err = s.users.SetBanned(ctx, targetUserID, true)
	case ActionUnban:
		err = s.users.SetBanned(ctx, targetUserID, false)
	case ActionPromote:
		err = s.users.SetRole(ctx, targetUserID, entities.RoleAdmin)
	default:
		return errors.ErrUnknownAction
	}
	if err != nil {
		return err
	}

	s.logger.Info("user status changed",
		"target_user_id", targetUserID,
		"action", action,
		"acting_user_id", actingUserID,
	)

	return nil
}

// newInviteCode gera um código imprevisível: prefixo fixo + sufixo
// alfanumérico aleatório normalizado em maiúsculas
func newInviteCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return inviteCodePrefix + suffix[:8]
}
