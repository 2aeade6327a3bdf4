package game

import (
	"context"
	"encoding/json"

	"github.com/hakimalhazi/Skiblo/internal/engine"
	"github.com/hakimalhazi/Skiblo/internal/roster"
)

// Summary describes a room in the public room list.
type Summary struct {
	Code     string           `json:"code"`
	Host     string           `json:"host"`
	Players  int              `json:"players"`
	Phase    engine.PhaseName `json:"phase"`
	GameMode engine.GameMode  `json:"gameMode"`
	Rounds   int              `json:"rounds"`
	IsPublic bool             `json:"isPublic"`
}

// Join adds a participant to the room. Only a create request can be the
// first join.
func (h *Hub) Join(ctx context.Context, req engine.JoinRequest) (roster.Participant, error) {
	var (
		p   roster.Participant
		err error
	)
	if execErr := h.do(ctx, func() {
		if h.engine.Phase() == engine.PhaseLogin && req.Mode != engine.JoinCreate {
			err = ErrRoomNotFound
			return
		}
		p, err = h.engine.SubmitJoin(req)
	}); execErr != nil {
		return roster.Participant{}, execErr
	}
	return p, err
}

// Start starts the game on behalf of the host.
func (h *Hub) Start(ctx context.Context, participantID string) error {
	var err error
	if execErr := h.do(ctx, func() {
		if err = h.requireHost(participantID); err != nil {
			return
		}
		err = h.engine.StartGame()
	}); execErr != nil {
		return execErr
	}
	return err
}

// UpdateSettings changes the lobby settings on behalf of the host and
// returns the settings in effect afterwards.
func (h *Hub) UpdateSettings(ctx context.Context, participantID string, settings engine.Settings) (engine.Settings, error) {
	var (
		applied engine.Settings
		err     error
	)
	if execErr := h.do(ctx, func() {
		if err = h.requireHost(participantID); err == nil {
			h.engine.UpdateSettings(settings)
		}
		applied = h.engine.Settings()
	}); execErr != nil {
		return engine.Settings{}, execErr
	}
	return applied, err
}

// SelectWord picks the drawer's word. It reports whether the word was taken.
func (h *Hub) SelectWord(ctx context.Context, participantID, word string) (bool, error) {
	var ok bool
	if err := h.do(ctx, func() {
		ok = h.engine.SelectWord(participantID, word)
	}); err != nil {
		return false, err
	}
	return ok, nil
}

// Guess submits a line of chat, which scores when it is the word.
func (h *Hub) Guess(ctx context.Context, participantID, text string) (engine.GuessResult, error) {
	var (
		res engine.GuessResult
		err error
	)
	if execErr := h.do(ctx, func() {
		if _, ok := h.engine.Participant(participantID); !ok {
			err = ErrUnknownParticipant
			return
		}
		res = h.engine.SubmitGuess(participantID, text)
	}); execErr != nil {
		return engine.GuessResult{}, execErr
	}
	return res, err
}

// AddBot seats a bot on behalf of the host. It reports false outside the
// lobby.
func (h *Hub) AddBot(ctx context.Context, participantID string) (roster.Participant, bool, error) {
	var (
		bot roster.Participant
		ok  bool
		err error
	)
	if execErr := h.do(ctx, func() {
		if err = h.requireHost(participantID); err != nil {
			return
		}
		bot, ok = h.engine.AddBot()
	}); execErr != nil {
		return roster.Participant{}, false, execErr
	}
	return bot, ok, err
}

// Kick removes targetID on behalf of the host and closes their connections.
func (h *Hub) Kick(ctx context.Context, hostID, targetID string) error {
	var err error
	if execErr := h.do(ctx, func() {
		if err = h.requireHost(hostID); err != nil {
			return
		}
		if hostID == targetID {
			err = ErrCannotKickHost
			return
		}
		if !h.engine.RemoveParticipant(targetID) {
			err = ErrUnknownParticipant
			return
		}
		h.log.Info().Str("participant", targetID).Msg("participant kicked")
		for client := range h.clients {
			if client.participantID == targetID {
				h.send(client, TypeKicked, struct{}{})
				delete(h.clients, client)
				client.Close()
			}
		}
	}); execErr != nil {
		return execErr
	}
	return err
}

// Leave removes a participant from the room.
func (h *Hub) Leave(ctx context.Context, participantID string) error {
	return h.do(ctx, func() {
		h.engine.RemoveParticipant(participantID)
	})
}

// Draw relays a canvas action from the drawer to everybody and keeps it for
// late connections. Anything sent by somebody else or outside the drawing
// phase is dropped.
func (h *Hub) Draw(ctx context.Context, participantID string, action json.RawMessage) error {
	return h.query(ctx, func() {
		if h.engine.Phase() != engine.PhaseDrawing || h.engine.CurrentDrawerID() != participantID {
			h.log.Debug().Str("participant", participantID).Msg("ignored draw action")
			return
		}
		h.canvas.sync(h.engine.Turn())
		if !h.canvas.add(action) {
			h.log.Warn().Msg("canvas history is full")
			return
		}
		h.relay(TypeDrawAction, action)
	})
}

// View returns the state as participantID sees it.
func (h *Hub) View(ctx context.Context, participantID string) (engine.View, error) {
	var v engine.View
	if err := h.query(ctx, func() {
		v = h.engine.View(participantID)
	}); err != nil {
		return engine.View{}, err
	}
	return v, nil
}

// Snapshot returns a deep copy of the full state.
func (h *Hub) Snapshot(ctx context.Context) (engine.GameState, error) {
	var s engine.GameState
	if err := h.query(ctx, func() {
		s = h.engine.Snapshot()
	}); err != nil {
		return engine.GameState{}, err
	}
	return s, nil
}

// Summary describes the room for the room list.
func (h *Hub) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	if err := h.query(ctx, func() {
		settings := h.engine.Settings()
		participants := h.engine.Participants()
		sum = Summary{
			Code:     h.code,
			Players:  len(participants),
			Phase:    h.engine.Phase(),
			GameMode: settings.GameMode,
			Rounds:   settings.Rounds,
			IsPublic: settings.IsPublic,
		}
		for _, p := range participants {
			if p.IsHost {
				sum.Host = p.Name
			}
		}
	}); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (h *Hub) requireHost(participantID string) error {
	if _, ok := h.engine.Participant(participantID); !ok {
		return ErrUnknownParticipant
	}
	if !h.engine.IsHost(participantID) {
		return ErrNotHost
	}
	return nil
}
