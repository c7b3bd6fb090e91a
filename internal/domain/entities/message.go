package entities

import "time"

// Message representa uma mensagem do chat. Imutável após a criação.
type Message struct {
	ID        uint
	UserID    uint
	Text      string
	Timestamp time.Time
}
