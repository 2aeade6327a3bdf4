// Package engine implements the rules of the drawing game as a phase state
// machine.
//
// An Engine owns one room's GameState. Every operation is a synchronous
// transition that leaves the state consistent; an Engine is not safe for
// concurrent use and is expected to be driven by a single goroutine.
package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hakimalhazi/Skiblo/internal/roster"
)

const (
	// WordChoiceSeconds is how long the drawer has to pick a word.
	WordChoiceSeconds = 15
	// RoundEndSeconds is the cooldown between turns.
	RoundEndSeconds = 5
	// MinPlayers is the roster size needed to start and keep a game going.
	MinPlayers = 2
)

// WordSource hands out word options. It also drives the random choices the
// engine makes, so a seeded source gives reproducible games.
type WordSource interface {
	Draw(k int) []string
	Perm(n int) []int
	Intn(n int) int
}

// Options configure a new Engine. Zero values get working defaults except
// for Words, which is required.
type Options struct {
	Words WordSource
	// Now stamps transcript entries.
	Now func() time.Time
	// NewID generates participant and entry identifiers.
	NewID func() string
	// NewRoomCode generates the room code of a created room.
	NewRoomCode func() string
	Logger      *zerolog.Logger
}

// Engine runs the game rules for one room.
type Engine struct {
	state       *GameState
	words       WordSource
	now         func() time.Time
	newID       func() string
	newRoomCode func() string
	log         zerolog.Logger
}

// New creates an engine in the Login phase.
func New(opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.NewRoomCode == nil {
		opts.NewRoomCode = NewRoomCode
	}
	logger := log.With().Str("module", "engine").Logger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	state := newGameState()
	state.Roster = roster.NewWithIDs(opts.NewID)

	return &Engine{
		state:       state,
		words:       opts.Words,
		now:         opts.Now,
		newID:       opts.NewID,
		newRoomCode: opts.NewRoomCode,
		log:         logger,
	}
}

// NewRoomCode returns a random six character upper-case room code.
func NewRoomCode() string {
	code := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(code[:6])
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() GameState {
	return e.state.Clone()
}

// Phase returns the current phase name.
func (e *Engine) Phase() PhaseName {
	return e.state.PhaseName()
}

// RoomCode returns the room code, or "" before anybody joined.
func (e *Engine) RoomCode() string {
	return e.state.RoomCode
}

// Settings returns the current settings.
func (e *Engine) Settings() Settings {
	return e.state.Settings
}

// Participant looks a participant up by id.
func (e *Engine) Participant(id string) (roster.Participant, bool) {
	return e.state.Roster.Find(id)
}

// Participants returns the roster in join order.
func (e *Engine) Participants() []roster.Participant {
	return e.state.Roster.Participants()
}

// IsHost reports whether id is the room's host.
func (e *Engine) IsHost(id string) bool {
	p, ok := e.state.Roster.Find(id)
	return ok && p.IsHost
}

// CurrentDrawerID returns the drawer of the current turn, or "".
func (e *Engine) CurrentDrawerID() string {
	return e.state.CurrentDrawerID()
}

// Turn returns how many turns were handed out so far.
func (e *Engine) Turn() int {
	return e.state.Turn
}

// TranscriptLen returns the number of transcript entries.
func (e *Engine) TranscriptLen() int {
	return e.state.Transcript.Len()
}

func (e *Engine) setPhase(p Phase) {
	from := e.state.PhaseName()
	e.state.Phase = p
	e.log.Debug().
		Str("room", e.state.RoomCode).
		Str("from", string(from)).
		Str("to", string(p.Name())).
		Int("round", e.state.CurrentRound).
		Msg("phase changed")
}

func (e *Engine) system(text string) {
	e.state.Transcript.Append(Entry{
		ID:         e.newID(),
		PlayerID:   SystemPlayerID,
		PlayerName: SystemName,
		Text:       text,
		IsSystem:   true,
		Timestamp:  e.now(),
		Turn:       e.state.Turn,
	})
}
