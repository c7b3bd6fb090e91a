package postgres

import "time"

// UserModel é o model GORM para usuários
type UserModel struct {
	ID          uint      `gorm:"primaryKey"`
	Nickname    string    `gorm:"type:varchar(100);not null"`
	TgUsername  string    `gorm:"type:varchar(100)"`
	Role        string    `gorm:"type:varchar(20);not null;default:'user';index"`
	AvatarColor string    `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	IsBanned    bool      `gorm:"not null;default:false"`
}

func (UserModel) TableName() string {
	return "users"
}

// InviteCodeModel é o model GORM para códigos de convite.
// created_by nulo indica código emitido pelo sistema no bootstrap.
type InviteCodeModel struct {
	ID        uint       `gorm:"primaryKey"`
	Code      string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	CreatedBy *uint      `gorm:"index"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UsedBy    *uint      `gorm:"index"`
	UsedAt    *time.Time
	IsActive  bool `gorm:"not null;default:true"`
}

func (InviteCodeModel) TableName() string {
	return "invite_codes"
}

// MessageModel é o model GORM para mensagens do chat
type MessageModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Text      string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime;index"`
}

func (MessageModel) TableName() string {
	return "messages"
}
