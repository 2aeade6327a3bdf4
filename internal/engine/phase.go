package engine

// PhaseName identifies a phase of the game. Phases are listed in the order a
// game moves through them; WordSelection, Drawing and RoundEnd repeat once per
// turn.
type PhaseName string

const (
	// PhaseLogin is the state before anybody has joined.
	PhaseLogin PhaseName = "LOGIN"
	// PhaseLobby waits for the host to start. Settings can only change here.
	PhaseLobby PhaseName = "LOBBY"
	// PhaseWordSelection gives the drawer a few words to pick from.
	PhaseWordSelection PhaseName = "WORD_SELECTION"
	// PhaseDrawing is when guesses are scored.
	PhaseDrawing PhaseName = "DRAWING"
	// PhaseRoundEnd reveals the word for a short cooldown.
	PhaseRoundEnd PhaseName = "ROUND_END"
	// PhaseGameEnd is terminal and carries the winner.
	PhaseGameEnd PhaseName = "GAME_END"
)

// Phase is one of Login, Lobby, WordSelection, Drawing, RoundEnd or GameEnd.
// Each variant only carries the data that exists during that phase.
type Phase interface {
	Name() PhaseName
}

// Login is the initial phase.
type Login struct{}

// Lobby is the pre-game phase.
type Lobby struct{}

// WordSelection is the drawer choosing a word.
type WordSelection struct {
	DrawerID string
	// Options is never empty.
	Options []string
}

// Drawing is the drawer drawing Word while everyone else guesses.
type Drawing struct {
	DrawerID string
	Word     string
	// Elapsed counts the ticks spent drawing so far.
	Elapsed int
	// RevealOrder lists the rune positions of Word's letters in the order
	// hints reveal them.
	RevealOrder []int
}

// RoundEnd shows the word after a turn. DrawerID is empty when the drawer
// left mid-turn.
type RoundEnd struct {
	DrawerID string
	Word     string
}

// GameEnd is terminal. WinnerID is empty when nobody was left.
type GameEnd struct {
	WinnerID string
}

func (Login) Name() PhaseName         { return PhaseLogin }
func (Lobby) Name() PhaseName         { return PhaseLobby }
func (WordSelection) Name() PhaseName { return PhaseWordSelection }
func (Drawing) Name() PhaseName       { return PhaseDrawing }
func (RoundEnd) Name() PhaseName      { return PhaseRoundEnd }
func (GameEnd) Name() PhaseName       { return PhaseGameEnd }

// IsActive reports whether the phase is counted down by ticks.
func (p PhaseName) IsActive() bool {
	return p == PhaseWordSelection || p == PhaseDrawing || p == PhaseRoundEnd
}

func clonePhase(p Phase) Phase {
	switch v := p.(type) {
	case WordSelection:
		v.Options = append([]string(nil), v.Options...)
		return v
	case Drawing:
		v.RevealOrder = append([]int(nil), v.RevealOrder...)
		return v
	default:
		return p
	}
}
