package ws

import (
	"context"
	"testing"
	"time"

	"github.com/rafabene/chatconvite-backend/internal/domain/ports"
)

type testLogger struct{}

func (testLogger) Info(msg string, args ...any)  {}
func (testLogger) Error(msg string, args ...any) {}
func (testLogger) Debug(msg string, args ...any) {}
func (testLogger) Warn(msg string, args ...any)  {}
func (l testLogger) With(args ...any) ports.Logger {
	return l
}

func newTestClient(hub *Hub, buffer int) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, buffer),
		addr: "test",
		lang: "en",
	}
}

func receiveOrTimeout(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(time.Second):
		t.Fatal("timeout esperando payload")
		return nil
	}
}

func waitClientCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("esperava %d clientes, obteve %d", want, hub.ClientCount())
}

func TestHub(t *testing.T) {
	t.Run("difusão alcança todos os clientes registrados", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := NewHub(testLogger{})
		go hub.Run(ctx)

		first := newTestClient(hub, 4)
		second := newTestClient(hub, 4)
		hub.Register(first)
		hub.Register(second)
		waitClientCount(t, hub, 2)

		hub.Broadcast([]byte("olá"))

		if got := string(receiveOrTimeout(t, first.send)); got != "olá" {
			t.Errorf("esperava 'olá' no primeiro cliente, obteve '%s'", got)
		}
		if got := string(receiveOrTimeout(t, second.send)); got != "olá" {
			t.Errorf("esperava 'olá' no segundo cliente, obteve '%s'", got)
		}

		hub.Unregister(first)
		hub.Unregister(second)
		waitClientCount(t, hub, 0)
	})

	t.Run("cliente desregistrado não recebe mais difusões", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := NewHub(testLogger{})
		go hub.Run(ctx)

		staying := newTestClient(hub, 4)
		leaving := newTestClient(hub, 4)
		hub.Register(staying)
		hub.Register(leaving)
		waitClientCount(t, hub, 2)

		hub.Unregister(leaving)
		waitClientCount(t, hub, 1)

		hub.Broadcast([]byte("ainda aqui"))

		if got := string(receiveOrTimeout(t, staying.send)); got != "ainda aqui" {
			t.Errorf("esperava 'ainda aqui', obteve '%s'", got)
		}

		// O canal do cliente que saiu foi fechado sem payload
		select {
		case payload, ok := <-leaving.send:
			if ok {
				t.Errorf("esperava canal fechado, obteve payload '%s'", payload)
			}
		case <-time.After(time.Second):
			t.Error("esperava canal fechado")
		}

		hub.Unregister(staying)
		waitClientCount(t, hub, 0)
	})

	t.Run("cliente com buffer cheio é removido", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := NewHub(testLogger{})
		go hub.Run(ctx)

		stalled := newTestClient(hub, 1)
		hub.Register(stalled)
		waitClientCount(t, hub, 1)

		// Primeira difusão enche o buffer; a segunda derruba o cliente
		hub.Broadcast([]byte("primeira"))
		hub.Broadcast([]byte("segunda"))

		waitClientCount(t, hub, 0)
	})
}
