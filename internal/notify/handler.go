package notify

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"deipna/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origin is already vetted by the CORS layer; the upgrade
	// request carries a bearer token through the auth middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/ws", h.Connect)
}

// Connect upgrades the request and parks the connection in the hub until
// the peer goes away. Reads are discarded; the feed is push only.
func (h *Handler) Connect(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(userID, conn)

	go func() {
		defer h.hub.Unregister(userID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
