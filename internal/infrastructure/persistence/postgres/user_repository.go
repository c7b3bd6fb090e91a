package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
	"github.com/rafabene/chatconvite-backend/internal/domain/repositories"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

// userWithCountRow é a linha projetada da listagem administrativa
type userWithCountRow struct {
	ID           uint
	Nickname     string
	TgUsername   string
	Role         string
	AvatarColor  string
	CreatedAt    time.Time
	IsBanned     bool
	MessageCount int64
}

func (r *UserRepository) ListWithMessageCount(ctx context.Context) ([]*repositories.UserWithCount, error) {
	var rows []userWithCountRow

	db := r.getDB(ctx)
	err := db.WithContext(ctx).
		Table("users").
		Select("users.id, users.nickname, users.tg_username, users.role, users.avatar_color, users.created_at, users.is_banned, COUNT(messages.id) AS message_count").
		Joins("LEFT JOIN messages ON messages.user_id = users.id").
		Group("users.id").
		Order("users.created_at DESC, users.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*repositories.UserWithCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, &repositories.UserWithCount{
			User: entities.User{
				ID:          row.ID,
				Nickname:    row.Nickname,
				TgUsername:  row.TgUsername,
				Role:        entities.Role(row.Role),
				AvatarColor: row.AvatarColor,
				CreatedAt:   row.CreatedAt,
				IsBanned:    row.IsBanned,
			},
			MessageCount: row.MessageCount,
		})
	}

	return result, nil
}

func (r *UserRepository) SetBanned(ctx context.Context, id uint, banned bool) error {
	db := r.getDB(ctx)
	return db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", id).
		Update("is_banned", banned).Error
}

func (r *UserRepository) SetRole(ctx context.Context, id uint, role entities.Role) error {
	db := r.getDB(ctx)
	return db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", id).
		Update("role", string(role)).Error
}

func (r *UserRepository) HasAdmin(ctx context.Context) (bool, error) {
	var count int64

	db := r.getDB(ctx)
	err := db.WithContext(ctx).
		Model(&UserModel{}).
		Where("role = ?", string(entities.RoleAdmin)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:          user.ID,
		Nickname:    user.Nickname,
		TgUsername:  user.TgUsername,
		Role:        string(user.Role),
		AvatarColor: user.AvatarColor,
		CreatedAt:   user.CreatedAt,
		IsBanned:    user.IsBanned,
	}
}

func (r *UserRepository) toEntity(model *UserModel) *entities.User {
	return &entities.User{
		ID:          model.ID,
		Nickname:    model.Nickname,
		TgUsername:  model.TgUsername,
		Role:        entities.Role(model.Role),
		AvatarColor: model.AvatarColor,
		CreatedAt:   model.CreatedAt,
		IsBanned:    model.IsBanned,
	}
}
