package engine

import (
	"fmt"

	"github.com/hakimalhazi/Skiblo/internal/roster"
	"github.com/hakimalhazi/Skiblo/internal/utils"
)

// GameState is the whole state of one room.
type GameState struct {
	Phase    Phase
	RoomCode string
	Roster   *roster.Roster
	// CurrentRound is 1-based once the game started and 0 before.
	CurrentRound int
	TotalRounds  int
	// Turn counts the turns handed out so far.
	Turn int
	// TimeLeft is the countdown of the current phase in seconds. It is zero
	// outside WordSelection, Drawing and RoundEnd.
	TimeLeft   int
	Settings   Settings
	Transcript *Transcript

	// seat is the join-order position of the most recent drawer. It is -1
	// before the first turn and is shifted down when somebody in front of it
	// leaves, so the next turn goes to seat+1.
	seat int
}

func newGameState() *GameState {
	settings := DefaultSettings()
	return &GameState{
		Phase:       Login{},
		Roster:      roster.New(),
		TotalRounds: settings.Rounds,
		Settings:    settings,
		Transcript:  &Transcript{},
		seat:        -1,
	}
}

// PhaseName returns the name of the current phase.
func (s GameState) PhaseName() PhaseName {
	return s.Phase.Name()
}

// CurrentDrawerID returns the drawer of the current turn, or "".
func (s GameState) CurrentDrawerID() string {
	switch p := s.Phase.(type) {
	case WordSelection:
		return p.DrawerID
	case Drawing:
		return p.DrawerID
	case RoundEnd:
		return p.DrawerID
	}
	return ""
}

// WordToGuess returns the word being drawn, or "" when no word is fixed.
func (s GameState) WordToGuess() string {
	switch p := s.Phase.(type) {
	case Drawing:
		return p.Word
	case RoundEnd:
		return p.Word
	}
	return ""
}

// WordOptions returns the drawer's choices during WordSelection.
func (s GameState) WordOptions() []string {
	if p, ok := s.Phase.(WordSelection); ok {
		return append([]string(nil), p.Options...)
	}
	return nil
}

// WordLength returns the letter count of the word being drawn.
func (s GameState) WordLength() int {
	return utils.LetterCount(s.WordToGuess())
}

// WinnerID returns the winner once the game ended.
func (s GameState) WinnerID() string {
	if p, ok := s.Phase.(GameEnd); ok {
		return p.WinnerID
	}
	return ""
}

// Hint returns the masked word with the letters revealed so far, or "" when
// nothing is being drawn.
func (s GameState) Hint() string {
	p, ok := s.Phase.(Drawing)
	if !ok {
		return ""
	}
	shown := 0
	if s.Settings.HintRevealTime > 0 {
		shown = p.Elapsed / s.Settings.HintRevealTime
	}
	if limit := len(p.RevealOrder) / 2; shown > limit {
		shown = limit
	}
	revealed := make(map[int]bool, shown)
	for _, pos := range p.RevealOrder[:shown] {
		revealed[pos] = true
	}
	return utils.MaskWord(p.Word, revealed)
}

// Clone returns a deep copy that shares nothing with s.
func (s *GameState) Clone() GameState {
	c := *s
	c.Phase = clonePhase(s.Phase)
	c.Roster = s.Roster.Clone()
	c.Transcript = s.Transcript.clone()
	return c
}

// validate checks the invariants that must hold between operations.
func (s *GameState) validate() error {
	name := s.PhaseName()

	drawing := 0
	for _, p := range s.Roster.Participants() {
		if p.IsDrawing {
			drawing++
		}
		if p.Score < 0 {
			return fmt.Errorf("participant %s has negative score %d", p.ID, p.Score)
		}
	}
	switch name {
	case PhaseWordSelection, PhaseDrawing:
		if drawing != 1 {
			return fmt.Errorf("%s with %d drawers", name, drawing)
		}
	default:
		if drawing != 0 {
			return fmt.Errorf("%s with %d drawers", name, drawing)
		}
	}

	if id := s.CurrentDrawerID(); id != "" {
		if _, ok := s.Roster.Find(id); !ok {
			return fmt.Errorf("drawer %s is not in the roster", id)
		}
	}
	if id := s.WinnerID(); id != "" {
		if _, ok := s.Roster.Find(id); !ok {
			return fmt.Errorf("winner %s is not in the roster", id)
		}
	}
	if s.TimeLeft < 0 {
		return fmt.Errorf("negative time left %d", s.TimeLeft)
	}
	if name != PhaseGameEnd && s.CurrentRound > s.TotalRounds {
		return fmt.Errorf("round %d exceeds %d", s.CurrentRound, s.TotalRounds)
	}
	if p, ok := s.Phase.(WordSelection); ok && len(p.Options) == 0 {
		return fmt.Errorf("no word options")
	}
	if p, ok := s.Phase.(Drawing); ok && p.Word == "" {
		return fmt.Errorf("drawing without a word")
	}
	return nil
}
