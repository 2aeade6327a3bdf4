package game

import (
	"encoding/json"

	"github.com/hakimalhazi/Skiblo/internal/engine"
)

// Message defines the structure of messages exchanged via WebSocket.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Messages sent by clients.
const (
	TypeChat           = "chatMessage"
	TypeWordChosen     = "wordChosen"
	TypeDrawAction     = "drawAction"
	TypeStartGame      = "startGame"
	TypeUpdateSettings = "updateSettings"
	TypeAddBot         = "addBot"
	TypeKick           = "kick"
	TypeLeave          = "leave"
)

// Messages sent by the server. TypeDrawAction is relayed as is.
const (
	TypeState       = "state"
	TypeDrawHistory = "drawHistory"
	TypeError       = "error"
	TypeKicked      = "kicked"
)

// ChatPayload is a line of chat, which is also how guesses are made.
type ChatPayload struct {
	Message string `json:"message"`
}

// WordChosenPayload is sent by the drawer to pick one of the options.
type WordChosenPayload struct {
	ChosenWord string `json:"chosenWord"`
}

// SettingsPayload carries new lobby settings.
type SettingsPayload struct {
	Settings engine.Settings `json:"settings"`
}

// KickPayload names the participant the host wants removed.
type KickPayload struct {
	ParticipantID string `json:"participantId"`
}

// DrawActionPayload for canvas drawing actions. The server only checks that
// it parses; the drawer's payload is relayed untouched.
type DrawActionPayload struct {
	Action   string  `json:"action"` // "start", "draw", "end", "clear", "controlChange"
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Color    string  `json:"color,omitempty"`
	Size     float64 `json:"size,omitempty"`
	IsEraser bool    `json:"isEraser,omitempty"`
	Control  string  `json:"control,omitempty"`
	Value    string  `json:"value,omitempty"`
}

// DrawHistoryPayload replays the current turn's canvas to a late connection.
type DrawHistoryPayload struct {
	Actions []json.RawMessage `json:"actions"`
}

// ErrorPayload reports a rejected command back to its sender.
type ErrorPayload struct {
	Error string `json:"error"`
}

// StatePayload is the per-viewer game state.
type StatePayload = engine.View

func encode(kind string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: kind, Payload: raw})
}
