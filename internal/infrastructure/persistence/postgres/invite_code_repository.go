package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
	"github.com/rafabene/chatconvite-backend/internal/domain/repositories"
)

// InviteCodeRepository implementa repositories.InviteCodeRepository
type InviteCodeRepository struct {
	db *gorm.DB
}

// NewInviteCodeRepository cria um novo InviteCodeRepository
func NewInviteCodeRepository(db *gorm.DB) repositories.InviteCodeRepository {
	return &InviteCodeRepository{db: db}
}

func (r *InviteCodeRepository) Create(ctx context.Context, code *entities.InviteCode) error {
	model := r.toModel(code)

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	code.ID = model.ID
	code.CreatedAt = model.CreatedAt
	return nil
}

func (r *InviteCodeRepository) FindByCode(ctx context.Context, code string) (*entities.InviteCode, error) {
	var model InviteCodeModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *InviteCodeRepository) FindByID(ctx context.Context, id uint) (*entities.InviteCode, error) {
	var model InviteCodeModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

// Redeem marca o código como consumido com um UPDATE condicional.
// RowsAffected == 0 significa que o código já foi consumido (ou
// desativado) por uma operação concorrente.
func (r *InviteCodeRepository) Redeem(ctx context.Context, codeID, userID uint) (bool, error) {
	now := time.Now().UTC()

	db := r.getDB(ctx)
	result := db.WithContext(ctx).
		Model(&InviteCodeModel{}).
		Where("id = ? AND is_active = ? AND used_by IS NULL", codeID, true).
		Updates(map[string]interface{}{
			"used_by": userID,
			"used_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// codeWithConsumerRow é a linha projetada da listagem administrativa
type codeWithConsumerRow struct {
	ID             uint
	Code           string
	CreatedBy      *uint
	CreatedAt      time.Time
	UsedBy         *uint
	UsedAt         *time.Time
	IsActive       bool
	UsedByNickname *string
}

func (r *InviteCodeRepository) ListWithConsumer(ctx context.Context) ([]*repositories.CodeWithConsumer, error) {
	var rows []codeWithConsumerRow

	db := r.getDB(ctx)
	err := db.WithContext(ctx).
		Table("invite_codes").
		Select("invite_codes.*, users.nickname AS used_by_nickname").
		Joins("LEFT JOIN users ON users.id = invite_codes.used_by").
		Order("invite_codes.created_at DESC, invite_codes.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*repositories.CodeWithConsumer, 0, len(rows))
	for _, row := range rows {
		result = append(result, &repositories.CodeWithConsumer{
			InviteCode: entities.InviteCode{
				ID:        row.ID,
				Code:      row.Code,
				CreatedBy: row.CreatedBy,
				CreatedAt: row.CreatedAt,
				UsedBy:    row.UsedBy,
				UsedAt:    row.UsedAt,
				IsActive:  row.IsActive,
			},
			UsedByNickname: row.UsedByNickname,
		})
	}

	return result, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *InviteCodeRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores
func (r *InviteCodeRepository) toModel(code *entities.InviteCode) *InviteCodeModel {
	return &InviteCodeModel{
		ID:        code.ID,
		Code:      code.Code,
		CreatedBy: code.CreatedBy,
		CreatedAt: code.CreatedAt,
		UsedBy:    code.UsedBy,
		UsedAt:    code.UsedAt,
		IsActive:  code.IsActive,
	}
}

func (r *InviteCodeRepository) toEntity(model *InviteCodeModel) *entities.InviteCode {
	return &entities.InviteCode{
		ID:        model.ID,
		Code:      model.Code,
		CreatedBy: model.CreatedBy,
		CreatedAt: model.CreatedAt,
		UsedBy:    model.UsedBy,
		UsedAt:    model.UsedAt,
		IsActive:  model.IsActive,
	}
}
