package ws

// Hub bertanggung jawab untuk:
// menyimpan koneksi client layar display,
// menerima event antrian dari service,
// dan menyiarkan event ke seluruh client yang terhubung.

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

// Client mewakili koneksi WebSocket
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// Hub mengelola semua koneksi client. Map Clients hanya disentuh oleh Run.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	done   chan struct{}
	count  atomic.Int64
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run memproses register/unregister/broadcast sampai ctx selesai.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.Clients {
				h.drop(client)
			}
			return
		case client := <-h.Register:
			h.Clients[client] = true
			h.count.Add(1)
			h.logger.Debug().Str("client_id", client.ID).Msg("display client registered")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				h.drop(client)
				h.logger.Debug().Str("client_id", client.ID).Msg("display client unregistered")
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					// Client lambat, putuskan.
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.Clients, client)
	close(client.Send)
	h.count.Add(-1)
}

// Publish mengirim event antrian ke semua layar display. Event dibuang
// jika buffer broadcast penuh.
func (h *Hub) Publish(event models.QueueEvent) {
	messageJSON, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", event.Type).Msg("failed to marshal broadcast message")
		return
	}
	select {
	case h.Broadcast <- messageJSON:
	default:
		h.logger.Warn().Str("type", event.Type).Msg("broadcast buffer full, event dropped")
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ClientCount returns the number of connected display clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}
