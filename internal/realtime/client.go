package realtime

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

// Session is one authenticated websocket connection and its room-addressed
// send queue.
type Session struct {
	identity Identity
	conn     *websocket.Conn
	send     chan envelope
}

func newSession(identity Identity, conn *websocket.Conn) *Session {
	return &Session{
		identity: identity,
		conn:     conn,
		send:     make(chan envelope, sendBuffer),
	}
}

// readPump drains inbound frames until the peer goes away. The channel is
// server-to-client only, so anything the client sends is discarded; the pump
// exists to detect disconnects and answer pings.
func (s *Session) readPump(h *Hub, log zerolog.Logger) {
	defer func() {
		h.Unregister(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(512)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("user_id", s.identity.UserID).Msg("websocket closed unexpectedly")
			}
			return
		}
	}
}

// writePump serialises queued events onto the wire and keeps the connection
// alive with periodic pings. Exits when the send channel is closed by the hub
// or a write fails.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
