package entities

import (
	"errors"
	"time"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema.
// Criado somente via registro com invite code; nunca deletado.
type User struct {
	ID          uint
	Nickname    string
	TgUsername  string
	Role        Role
	AvatarColor string
	CreatedAt   time.Time
	IsBanned    bool
}

// Profile é a projeção pública de um usuário — o que pode ser
// enviado a outros clientes (exclui flag de ban e timestamps internos)
type Profile struct {
	ID          uint   `json:"id"`
	Nickname    string `json:"nickname"`
	TgUsername  string `json:"tg_username"`
	Role        string `json:"role"`
	AvatarColor string `json:"avatar_color"`
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile retorna a projeção pública do usuário
func (u *User) Profile() Profile {
	return Profile{
		ID:          u.ID,
		Nickname:    u.Nickname,
		TgUsername:  u.TgUsername,
		Role:        string(u.Role),
		AvatarColor: u.AvatarColor,
	}
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Nickname == "" {
		return errors.New("nickname is required")
	}

	if !u.Role.IsValid() {
		return errors.New("invalid role")
	}

	return nil
}
