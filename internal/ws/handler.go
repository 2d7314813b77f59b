package ws

import (
	"encoding/json"
	"net/http"

	"printmitra-be/internal/logger"
	"printmitra-be/internal/user"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from the marketplace frontend on another origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inboundMessage is what clients send over the socket. The only supported
// action is the authenticate handshake; everything else goes through HTTP.
type inboundMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Handler upgrades HTTP requests and runs the connection read loop.
type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("ws upgrade failed", zap.Error(err))
		return
	}

	go h.readLoop(conn)
}

func (h *Handler) readLoop(conn *websocket.Conn) {
	defer func() {
		h.registry.Unregister(conn)
		_ = conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		if msg.Type != "authenticate" {
			continue
		}

		claims, err := user.ParseJWT(msg.Token)
		if err != nil {
			logger.L().Warn("ws authenticate rejected", zap.Error(err))
			continue
		}

		// The ack goes through the registry so it shares the per-connection
		// write lock with the dispatcher; a delivery racing the handshake
		// must not write the conn concurrently with this goroutine.
		h.registry.Register(claims.UserID, conn)
		h.registry.Deliver(claims.UserID, Event{
			Type: EventAuthenticated,
			Data: map[string]int64{"userId": claims.UserID},
		})
	}
}
