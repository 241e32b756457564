package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/roster/internal/service"
	ws "github.com/stemsi/roster/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the roster table to browser views.
type WSHandler struct {
	hub            *ws.Hub
	studentService *service.StudentService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *ws.Hub, studentService *service.StudentService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub:            hub,
		studentService: studentService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// RosterStream godoc
// WS /ws/v1/students/stream
// Sends the current table on connect and again after every roster change.
func (h *WSHandler) RosterStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := h.hub.Register(conn)
	defer h.hub.Unregister(client)

	client.Send(h.table())

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Msg("Unexpected close")
			} else {
				h.log.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			client.Send(ws.PongResponse{Event: ws.EventPong})
		case ws.ActionRefresh:
			client.Send(h.table())
		default:
			client.Send(ws.ErrorResponse{Event: ws.EventError, Error: "unknown action"})
		}
	}
}

func (h *WSHandler) table() ws.TableResponse {
	return ws.TableResponse{Event: ws.EventTable, Students: h.studentService.List()}
}
