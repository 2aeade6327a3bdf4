package game

import "encoding/json"

// maxDrawActions bounds the canvas history kept for one turn.
const maxDrawActions = 20000

// canvas stores the payloads of the current turn's drawAction messages so
// late connections can be brought up to date.
type canvas struct {
	turn    int
	actions []json.RawMessage
}

// sync clears the history when a new turn started.
func (c *canvas) sync(turn int) {
	if c.turn == turn {
		return
	}
	c.turn = turn
	c.actions = c.actions[:0]
}

func (c *canvas) add(action json.RawMessage) bool {
	if len(c.actions) >= maxDrawActions {
		return false
	}
	c.actions = append(c.actions, action)
	return true
}

func (c *canvas) history() []json.RawMessage {
	out := make([]json.RawMessage, len(c.actions))
	copy(out, c.actions)
	return out
}
