package services

import (
	"context"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
	"github.com/rafabene/chatconvite-backend/internal/domain/errors"
	"github.com/rafabene/chatconvite-backend/internal/domain/ports"
	"github.com/rafabene/chatconvite-backend/internal/domain/repositories"
)

// UserService resolve identidades numéricas em perfis públicos e
// responde checagens de papel. Leituras puras, sem cache.
type UserService struct {
	users  repositories.UserRepository
	logger ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(users repositories.UserRepository, logger ports.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// GetProfile retorna a projeção pública de um usuário
func (s *UserService) GetProfile(ctx context.Context, id uint) (*entities.Profile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	profile := user.Profile()
	return &profile, nil
}

// IsAdmin verifica se a identidade existe e tem papel de admin.
// Identidade ausente ou desconhecida resulta em false, não erro.
func (s *UserService) IsAdmin(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	return user.IsAdmin(), nil
}
