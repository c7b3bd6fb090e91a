package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Tempo permitido para escrever uma mensagem ao cliente
	writeWait = 10 * time.Second
	// Tempo permitido para receber o próximo pong
	pongWait = 60 * time.Second
	// Período dos pings; deve ser menor que pongWait
	pingPeriod = (pongWait * 9) / 10
	// Tamanho máximo de mensagem aceito do cliente
	maxMessageSize = 4096
)

// Event é o envelope JSON bidirecional do canal realtime:
// {"event": "...", "data": {...}}
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client representa uma conexão WebSocket ativa.
// Nenhum estado de sessão persiste na conexão além do idioma
// negociado no handshake.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	addr string
	lang string
}

func newClient(hub *Hub, conn *websocket.Conn, addr, lang string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		addr: addr,
		lang: lang,
	}
}

// sendEvent enfileira um evento para este cliente apenas (usado para
// histórico e notificações privadas de erro). Melhor esforço: se o
// buffer estiver cheio, o evento é descartado.
func (c *Client) sendEvent(event string, data any) {
	payload, err := marshalEvent(event, data)
	if err != nil {
		return
	}

	select {
	case c.send <- payload:
	default:
	}
}

func marshalEvent(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: event, Data: raw})
}

// readPump consome eventos da conexão e os entrega ao dispatcher.
// Encerra (e desregistra o cliente) no primeiro erro de leitura.
func (c *Client) readPump(dispatch func(*Client, Event)) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var evt Event
		if err := json.Unmarshal(raw, &evt); err != nil {
			// Evento malformado: sem canal de erro no contrato,
			// apenas descartar
			continue
		}

		dispatch(c, evt)
	}
}

// writePump escreve eventos enfileirados e mantém a conexão viva com
// pings periódicos
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
