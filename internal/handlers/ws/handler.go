package ws

import (
	"context"
	"encoding/json"
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rafabene/chatconvite-backend/internal/domain/errors"
	"github.com/rafabene/chatconvite-backend/internal/domain/ports"
	"github.com/rafabene/chatconvite-backend/internal/handlers/dto"
	"github.com/rafabene/chatconvite-backend/internal/infrastructure/i18n"
	"github.com/rafabene/chatconvite-backend/internal/services"
)

// Eventos do canal realtime
const (
	EventGetHistory     = "get_history"
	EventSendMessage    = "send_message"
	EventMessageHistory = "message_history"
	EventNewMessage     = "new_message"
	EventError          = "error"
)

// errorPayload é o corpo do evento `error` (privado ao remetente)
type errorPayload struct {
	Message string `json:"message"`
}

// sendMessagePayload é o corpo do evento `send_message`
type sendMessagePayload struct {
	UserID uint   `json:"userId"`
	Text   string `json:"text"`
}

// Handler faz o upgrade das conexões e despacha os eventos do chat
type Handler struct {
	hub      *Hub
	chat     *services.ChatService
	i18n     *i18n.Service
	logger   ports.Logger
	upgrader websocket.Upgrader
}

// NewHandler cria um novo Handler do canal realtime
func NewHandler(hub *Hub, chat *services.ChatService, i18nService *i18n.Service, logger ports.Logger) *Handler {
	return &Handler{
		hub:    hub,
		chat:   chat,
		i18n:   i18nService,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// O acesso é gateado por invite code, não por origem;
			// CORS do HTTP cobre o restante da aplicação
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeWS faz o upgrade da requisição e registra o cliente no hub
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(h.hub, conn, c.Request.RemoteAddr, dto.GetLanguage(c))
	h.hub.Register(client)

	go client.writePump()
	go client.readPump(h.dispatch)
}

// dispatch trata um evento recebido de um cliente
func (h *Handler) dispatch(client *Client, evt Event) {
	ctx := context.Background()

	switch evt.Event {
	case EventGetHistory:
		h.handleGetHistory(ctx, client)
	case EventSendMessage:
		h.handleSendMessage(ctx, client, evt)
	default:
		// Evento desconhecido: descartar
	}
}

func (h *Handler) handleGetHistory(ctx context.Context, client *Client) {
	history, err := h.chat.History(ctx, services.DefaultHistoryLimit)
	if err != nil {
		h.logger.Error("failed to load history", "error", err)
		client.sendEvent(EventError, errorPayload{
			Message: h.i18n.T(client.lang, "error.history_failed"),
		})
		return
	}

	client.sendEvent(EventMessageHistory, dto.ToMessageResponses(history))
}

func (h *Handler) handleSendMessage(ctx context.Context, client *Client, evt Event) {
	var payload sendMessagePayload
	if err := json.Unmarshal(evt.Data, &payload); err != nil {
		// Payload malformado: descartar em silêncio
		return
	}

	outgoing, err := h.chat.SendMessage(ctx, payload.UserID, payload.Text)
	if err != nil {
		if errs.Is(err, errors.ErrUserBanned) {
			// Notificação privada: apenas a conexão de origem
			client.sendEvent(EventError, errorPayload{
				Message: h.i18n.T(client.lang, "error.user_banned"),
			})
			return
		}

		h.logger.Error("failed to send message",
			"user_id", payload.UserID,
			"error", err,
		)
		client.sendEvent(EventError, errorPayload{
			Message: h.i18n.T(client.lang, "error.message_rejected"),
		})
		return
	}

	// Descarte silencioso (texto vazio ou autor inexistente)
	if outgoing == nil {
		return
	}

	broadcast, err := marshalEvent(EventNewMessage, outgoing)
	if err != nil {
		h.logger.Error("failed to marshal broadcast", "error", err)
		return
	}

	h.hub.Broadcast(broadcast)
}
