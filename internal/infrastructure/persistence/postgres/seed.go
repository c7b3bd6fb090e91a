package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/chatconvite-backend/internal/domain/ports"
)

// SeedInviteCode garante que exista um código de convite inicial
// enquanto nenhum admin foi criado. O resgate desse código concede o
// papel de admin ao primeiro usuário registrado.
func SeedInviteCode(db *gorm.DB, code string, log ports.Logger) error {
	var admins int64
	if err := db.Model(&UserModel{}).
		Where("role = ?", "admin").
		Count(&admins).Error; err != nil {
		return err
	}

	if admins > 0 {
		return nil
	}

	var existing InviteCodeModel
	err := db.Where("code = ?", code).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	seed := InviteCodeModel{
		Code:     code,
		IsActive: true,
	}
	if err := db.Create(&seed).Error; err != nil {
		return err
	}

	log.Info("seed invite code created", "code", code)
	return nil
}
