package engine

import (
	"github.com/hakimalhazi/Skiblo/internal/roster"
)

// View is the state as one participant is allowed to see it. The word is
// only included for the drawer and once the round ended.
type View struct {
	Phase           PhaseName            `json:"phase"`
	RoomCode        string               `json:"roomCode"`
	ViewerID        string               `json:"viewerId,omitempty"`
	Players         []roster.Participant `json:"players"`
	CurrentRound    int                  `json:"currentRound"`
	TotalRounds     int                  `json:"totalRounds"`
	CurrentDrawerID string               `json:"currentDrawerId,omitempty"`
	WordToGuess     string               `json:"wordToGuess,omitempty"`
	WordOptions     []string             `json:"wordOptions,omitempty"`
	WordLength      int                  `json:"wordLength"`
	Hint            string               `json:"hint,omitempty"`
	TimeLeft        int                  `json:"timeLeft"`
	Messages        []Entry              `json:"messages"`
	Settings        Settings             `json:"settings"`
	WinnerID        string               `json:"winnerId,omitempty"`
}

// View renders the state for viewerID. An empty or unknown viewer gets the
// spectator view.
func (e *Engine) View(viewerID string) View {
	s := e.state
	viewer, _ := s.Roster.Find(viewerID)
	drawerID := s.CurrentDrawerID()
	isDrawer := viewerID != "" && viewerID == drawerID

	v := View{
		Phase:           s.PhaseName(),
		RoomCode:        s.RoomCode,
		ViewerID:        viewer.ID,
		Players:         s.Roster.ByScore(),
		CurrentRound:    s.CurrentRound,
		TotalRounds:     s.TotalRounds,
		CurrentDrawerID: drawerID,
		WordLength:      s.WordLength(),
		Hint:            s.Hint(),
		TimeLeft:        s.TimeLeft,
		Settings:        s.Settings,
		WinnerID:        s.WinnerID(),
	}

	switch s.Phase.(type) {
	case WordSelection:
		if isDrawer {
			v.WordOptions = s.WordOptions()
		}
	case Drawing:
		if isDrawer {
			v.WordToGuess = s.WordToGuess()
		}
	case RoundEnd:
		v.WordToGuess = s.WordToGuess()
	}

	solver := isDrawer || viewer.HasGuessed
	_, drawing := s.Phase.(Drawing)
	entries := s.Transcript.Entries()
	v.Messages = make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Audience == AudienceSolvers && drawing && entry.Turn == s.Turn && !solver {
			continue
		}
		v.Messages = append(v.Messages, entry)
	}
	return v
}
