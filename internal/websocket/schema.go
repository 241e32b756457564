package websocket

import "github.com/stemsi/roster/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing    Action = "ping"
	ActionRefresh Action = "refresh"
)

// RequestEnvelope is every client frame.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventTable Event = "table"
	EventPong  Event = "pong"
	EventError Event = "error"
)

// TableResponse carries the full roster for the view to re-render.
type TableResponse struct {
	Event    Event           `json:"event"`
	Students []model.Student `json:"students"`
}

type PongResponse struct {
	Event Event `json:"event"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
