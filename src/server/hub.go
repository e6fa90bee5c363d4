package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"price-tracker/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// runHub is the main Hub loop. It owns the clients map; all mutation happens
// on this goroutine.
func (s *APIServer) runHub() {
	for {
		select {
		case client, ok := <-s.register:
			if !ok {
				return
			}
			s.clients[client] = struct{}{}
			s.connections.Store(int64(len(s.clients)))

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
				s.connections.Store(int64(len(s.clients)))
			}

		case result, ok := <-s.broadcast:
			if !ok {
				return
			}

			for client := range s.clients {
				if !client.wants(result) {
					continue
				}

				select {
				case client.send <- result:
					// Message sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
					s.connections.Store(int64(len(s.clients)))
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------

// Broadcast queues a freshly resolved result for every subscribed client.
// Wired as the engine's OnResolve callback.
func (s *APIServer) Broadcast(result *models.MPriceHistoryResult) {
	select {
	case s.broadcast <- result:
	default:
		// Queue full; dropping a push update is preferable to stalling the
		// resolution path.
		s.Logger.Warning("Broadcast queue full, dropping update for %s", result.Model)
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MPriceHistoryResult, 256),
	}

	s.register <- client

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) handleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	filters := make([]string, 0, len(cmd.Models))
	for _, m := range cmd.Models {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			filters = append(filters, m)
		}
	}

	client.setFilters(filters)
}
