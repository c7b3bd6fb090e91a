package ws

import (
	"context"
	"sync"

	"github.com/rafabene/chatconvite-backend/internal/domain/ports"
)

// Hub é o registro explícito de conexões ativas do chat: insere no
// connect, remove no disconnect e difunde mensagens para todos os
// clientes conectados (incluindo o remetente). Entrega é melhor
// esforço: sem ack, sem retry, sem fila para desconectados.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
	logger     ports.Logger
}

// NewHub cria um novo Hub
func NewHub(logger ports.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		logger:     logger,
	}
}

// Register insere um cliente no registro
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister remove um cliente do registro
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast difunde um payload já serializado a todos os conectados
func (h *Hub) Broadcast(payload []byte) {
	h.broadcast <- payload
}

// ClientCount retorna o número de clientes conectados
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run executa o loop principal do hub. Deve rodar numa goroutine
// própria; encerra quando o contexto é cancelado.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("websocket client connected",
				"addr", client.addr,
				"total_clients", count,
			)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				count := len(h.clients)
				h.mu.Unlock()
				close(client.send)
				h.logger.Info("websocket client disconnected",
					"addr", client.addr,
					"total_clients", count,
				)
			} else {
				h.mu.Unlock()
			}

		case payload := <-h.broadcast:
			h.fanOut(payload)
		}
	}
}

// fanOut entrega o payload a cada cliente; quem estiver com o buffer
// de envio cheio é removido do registro
func (h *Hub) fanOut(payload []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	var stalled []*Client
	for _, client := range clients {
		select {
		case client.send <- payload:
		default:
			stalled = append(stalled, client)
		}
	}

	h.removeStalled(stalled)
}

func (h *Hub) removeStalled(stalled []*Client) {
	if len(stalled) == 0 {
		return
	}

	h.mu.Lock()
	var toClose []chan []byte
	for _, client := range stalled {
		if _, ok := h.clients[client]; ok {
			delete(h.clients, client)
			toClose = append(toClose, client.send)
			h.logger.Warn("websocket client dropped, send buffer full",
				"addr", client.addr,
			)
		}
	}
	h.mu.Unlock()

	// Fechar os canais fora do lock
	for _, ch := range toClose {
		close(ch)
	}
}

// shutdown fecha todas as conexões ativas
func (h *Hub) shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.clients = make(map[*Client]bool)
	h.mu.Unlock()

	for _, client := range clients {
		_ = client.conn.Close()
		close(client.send)
	}

	h.logger.Info("websocket hub stopped", "closed_clients", len(clients))
}
