package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yoockh/jobboard/internal/relay"
)

type WSHandler struct {
	hub      *relay.Hub
	base     context.Context
	upgrader websocket.Upgrader
}

// NewWSHandler serves the relay. Connections live until the client leaves or
// base is cancelled.
func NewWSHandler(base context.Context, hub *relay.Hub, allowedOrigin string) *WSHandler {
	allowed := strings.TrimRight(allowedOrigin, "/")
	return &WSHandler{
		hub:  hub,
		base: base,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// non-browser clients send no origin
				return origin == "" || strings.TrimRight(origin, "/") == allowed
			},
		},
	}
}

func (h *WSHandler) Serve(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}

	h.hub.Serve(h.base, relay.NewWSConn(conn, p.UserID))
}
