package relay

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	maxFrameSize = 64 << 10
)

// WSConn adapts a gorilla websocket to Conn. Writes are serialized.
type WSConn struct {
	id     string
	userID string
	ws     *websocket.Conn
	mu     sync.Mutex
}

func NewWSConn(ws *websocket.Conn, userID string) *WSConn {
	return &WSConn{id: uuid.NewString(), userID: userID, ws: ws}
}

func (w *WSConn) ID() string     { return w.id }
func (w *WSConn) UserID() string { return w.userID }

func (w *WSConn) Send(env Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return w.write(websocket.TextMessage, b)
}

func (w *WSConn) write(kind int, b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return w.ws.WriteMessage(kind, b)
}

// Serve attaches the connection to the hub and pumps frames until the client
// goes away or ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, w *WSConn) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer w.ws.Close()

	h.Attach(ctx, w)
	// detach with a fresh context, the request one is already gone
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer dcancel()
		h.Disconnect(dctx, w)
	}()

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				// unblocks ReadMessage on shutdown
				_ = w.ws.Close()
				return
			case <-ticker.C:
				if err := w.write(websocket.PingMessage, nil); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	w.ws.SetReadLimit(maxFrameSize)
	_ = w.ws.SetReadDeadline(time.Now().Add(pongWait))
	w.ws.SetPongHandler(func(string) error {
		return w.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := w.ws.ReadMessage()
		if err != nil {
			return
		}
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		h.Handle(ctx, w, env)
	}
}
