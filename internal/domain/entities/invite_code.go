package entities

import "time"

// InviteCode representa um código de convite de uso único.
// CreatedBy nulo significa código emitido pelo sistema (bootstrap).
type InviteCode struct {
	ID        uint
	Code      string
	CreatedBy *uint
	CreatedAt time.Time
	UsedBy    *uint
	UsedAt    *time.Time
	IsActive  bool
}

// IsRedeemable verifica se o código ainda pode ser resgatado.
// Invariante: resgatável sse ativo E sem consumidor.
func (c *InviteCode) IsRedeemable() bool {
	return c.IsActive && c.UsedBy == nil
}
