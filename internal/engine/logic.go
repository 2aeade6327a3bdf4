package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hakimalhazi/Skiblo/internal/roster"
	"github.com/hakimalhazi/Skiblo/internal/scoring"
	"github.com/hakimalhazi/Skiblo/internal/utils"
	"github.com/hakimalhazi/Skiblo/internal/words"
)

// JoinMode tells whether a join creates a new room or enters an existing one.
type JoinMode string

const (
	JoinCreate JoinMode = "create"
	JoinJoin   JoinMode = "join"
)

// JoinRequest is what a participant submits to enter a room.
type JoinRequest struct {
	Name     string   `json:"name"`
	Avatar   string   `json:"avatar"`
	Mode     JoinMode `json:"mode"`
	RoomCode string   `json:"roomCode"`
}

// GuessResult describes what a submitted line of text did.
type GuessResult struct {
	// Accepted is false when the text was dropped without a transcript entry.
	Accepted bool
	Correct  bool
	Award    scoring.Award
	// RoundEnded is true when this guess completed the turn.
	RoundEnded bool
}

// SubmitJoin adds a participant. The first join moves the room from Login to
// Lobby; a create request makes the joiner host. Later joins enter as plain
// participants, also while a game is running.
func (e *Engine) SubmitJoin(req JoinRequest) (roster.Participant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return roster.Participant{}, ErrEmptyName
	}

	s := e.state
	host := false
	if s.PhaseName() == PhaseLogin {
		if req.Mode == JoinCreate {
			host = true
			s.RoomCode = e.newRoomCode()
		} else {
			s.RoomCode = strings.ToUpper(strings.TrimSpace(req.RoomCode))
			if s.RoomCode == "" {
				s.RoomCode = e.newRoomCode()
			}
		}
		e.setPhase(Lobby{})
	}

	p := s.Roster.Add(roster.NewParticipant{
		Name:   name,
		Avatar: req.Avatar,
		IsHost: host,
	})
	e.system(fmt.Sprintf("%s doet mee!", p.Name))
	e.log.Info().Str("room", s.RoomCode).Str("participant", p.ID).Bool("host", p.IsHost).Msg("participant joined")
	return p, nil
}

// AddBot adds a computer participant to the lobby. Bots only fill seats; they
// never draw anything or guess.
func (e *Engine) AddBot() (roster.Participant, bool) {
	if e.state.PhaseName() != PhaseLobby {
		return roster.Participant{}, false
	}
	name := roster.BotNames[e.words.Intn(len(roster.BotNames))]
	p := e.state.Roster.Add(roster.NewParticipant{
		Name:   name + " (Bot)",
		Avatar: roster.Avatars[e.words.Intn(len(roster.Avatars))],
		IsBot:  true,
	})
	e.system(fmt.Sprintf("%s doet mee!", p.Name))
	return p, true
}

// UpdateSettings replaces the settings while the game has not started yet.
// Values are clamped into range. It reports whether the settings were applied.
func (e *Engine) UpdateSettings(settings Settings) bool {
	switch e.state.PhaseName() {
	case PhaseLogin, PhaseLobby:
	default:
		return false
	}
	e.state.Settings = settings.Sanitize()
	e.state.TotalRounds = e.state.Settings.Rounds
	return true
}

// StartGame leaves the lobby and hands the first turn to the earliest
// participant. Outside the lobby it does nothing.
func (e *Engine) StartGame() error {
	s := e.state
	if s.PhaseName() != PhaseLobby {
		return nil
	}
	if s.Roster.Len() < MinPlayers {
		return ErrNotEnoughPlayers
	}

	s.TotalRounds = s.Settings.Rounds
	s.CurrentRound = 1
	s.Turn = 0
	s.seat = -1
	e.log.Info().Str("room", s.RoomCode).Int("players", s.Roster.Len()).Int("rounds", s.TotalRounds).Msg("game started")
	e.advanceTurn()
	return nil
}

// SelectWord fixes the word for the turn. Only the drawer can choose, only
// during WordSelection and only one of the offered options.
func (e *Engine) SelectWord(participantID, word string) bool {
	p, ok := e.state.Phase.(WordSelection)
	if !ok || p.DrawerID != participantID {
		return false
	}
	for _, option := range p.Options {
		if utils.SameWord(word, option) {
			e.startDrawing(option)
			return true
		}
	}
	return false
}

// SubmitGuess records a line of chat from a participant. While drawing, a
// guesser's text matching the word scores and is not shown, and chat from the
// drawer or from somebody who already guessed is only shown to solvers.
// Anything else is appended to the transcript as is.
func (e *Engine) SubmitGuess(participantID, text string) GuessResult {
	s := e.state
	p, ok := s.Roster.Find(participantID)
	if !ok {
		return GuessResult{}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return GuessResult{}
	}

	entry := Entry{
		ID:         e.newID(),
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Text:       text,
		Timestamp:  e.now(),
		Turn:       s.Turn,
	}

	drawing, isDrawing := s.Phase.(Drawing)
	if !isDrawing {
		s.Transcript.Append(entry)
		return GuessResult{Accepted: true}
	}

	// Whoever knows the word only talks to the others who know it.
	if p.IsDrawing || p.HasGuessed {
		entry.Audience = AudienceSolvers
		s.Transcript.Append(entry)
		return GuessResult{Accepted: true}
	}
	if !utils.SameWord(text, drawing.Word) {
		s.Transcript.Append(entry)
		return GuessResult{Accepted: true}
	}

	award := scoring.ForCorrectGuess(s.TimeLeft, s.Settings.TimePerRound)
	s.Roster.AddScore(p.ID, award.Guesser)
	s.Roster.AddScore(drawing.DrawerID, award.Drawer)
	s.Roster.MarkGuessed(p.ID)

	entry.Text = fmt.Sprintf("%s heeft het woord geraden!", p.Name)
	entry.IsCorrectGuess = true
	s.Transcript.Append(entry)
	e.log.Debug().Str("room", s.RoomCode).Str("participant", p.ID).Int("points", award.Guesser).Msg("correct guess")

	result := GuessResult{Accepted: true, Correct: true, Award: award}
	if s.Roster.AllGuessed() {
		e.endRound(fmt.Sprintf("Iedereen heeft het woord geraden! Het woord was: %s", drawing.Word))
		result.RoundEnded = true
	}
	return result
}

// Tick advances the countdown of the current phase by one second and fires
// the phase's timeout when it reaches zero. It reports whether anything
// changed; ticks outside the active phases do nothing.
func (e *Engine) Tick() bool {
	s := e.state
	if !s.PhaseName().IsActive() {
		return false
	}
	if s.TimeLeft > 0 {
		s.TimeLeft--
	}
	if p, ok := s.Phase.(Drawing); ok {
		p.Elapsed++
		s.Phase = p
	}
	if s.TimeLeft > 0 {
		return true
	}

	switch p := s.Phase.(type) {
	case WordSelection:
		e.log.Debug().Str("room", s.RoomCode).Str("word", p.Options[0]).Msg("word choice timed out")
		e.startDrawing(p.Options[0])
	case Drawing:
		e.endRound(fmt.Sprintf("Tijd is om! Het woord was: %s", p.Word))
	case RoundEnd:
		e.advanceTurn()
	}
	return true
}

// RemoveParticipant takes a participant out of the room. A departing host
// hands over to the earliest remaining participant. During a game a departing
// drawer ends the turn, and the game ends once fewer than MinPlayers remain.
// After the game a departing winner passes the win to the next leader.
func (e *Engine) RemoveParticipant(id string) bool {
	s := e.state
	removed, idx, ok := s.Roster.Remove(id)
	if !ok {
		return false
	}
	if idx <= s.seat {
		s.seat--
	}
	e.system(fmt.Sprintf("%s heeft het spel verlaten.", removed.Name))
	e.log.Info().Str("room", s.RoomCode).Str("participant", id).Msg("participant left")

	if removed.IsHost && s.Roster.Len() > 0 {
		s.Roster.SetHost(s.Roster.At(0).ID)
	}

	if p, ok := s.Phase.(GameEnd); ok && p.WinnerID == id {
		e.crownWinner()
	}
	if !s.PhaseName().IsActive() {
		return true
	}
	if s.Roster.Len() < MinPlayers {
		e.system("Te weinig spelers over.")
		e.endGame()
		return true
	}

	switch p := s.Phase.(type) {
	case WordSelection:
		if p.DrawerID == id {
			e.advanceTurn()
		}
	case Drawing:
		if p.DrawerID == id {
			e.endRound(fmt.Sprintf("De tekenaar is weg. Het woord was: %s", p.Word))
		} else if s.Roster.AllGuessed() {
			e.endRound(fmt.Sprintf("Iedereen heeft het woord geraden! Het woord was: %s", p.Word))
		}
	case RoundEnd:
		if p.DrawerID == id {
			p.DrawerID = ""
			s.Phase = p
		}
	}
	return true
}

// advanceTurn hands the next turn to the participant after the current seat.
// Wrapping past the end of the roster starts a new round, and running out of
// rounds ends the game.
func (e *Engine) advanceTurn() {
	s := e.state
	n := s.Roster.Len()
	if n == 0 {
		e.endGame()
		return
	}

	next := s.seat + 1
	round := s.CurrentRound
	if next >= n {
		next = 0
		round++
	}
	if round > s.TotalRounds {
		e.endGame()
		return
	}

	drawer := s.Roster.At(next)
	options := e.words.Draw(s.Settings.WordCount)
	if len(options) == 0 {
		options = []string{words.DefaultCorpus[e.words.Intn(len(words.DefaultCorpus))]}
	}

	s.seat = next
	s.CurrentRound = round
	s.Turn++
	s.Roster.ResetGuesses()
	s.Roster.SetDrawer(drawer.ID)
	s.TimeLeft = WordChoiceSeconds
	e.setPhase(WordSelection{DrawerID: drawer.ID, Options: options})
	e.system(fmt.Sprintf("Ronde %d! %s is aan de beurt om te tekenen.", round, drawer.Name))
}

func (e *Engine) startDrawing(word string) {
	s := e.state
	drawerID := s.CurrentDrawerID()

	var letters []int
	i := 0
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			letters = append(letters, i)
		}
		i++
	}
	order := make([]int, len(letters))
	for j, k := range e.words.Perm(len(letters)) {
		order[j] = letters[k]
	}

	s.Roster.ResetGuesses()
	s.TimeLeft = s.Settings.TimePerRound
	e.setPhase(Drawing{DrawerID: drawerID, Word: word, RevealOrder: order})
	e.system(fmt.Sprintf("Het woord is gekozen! Het heeft %d letters.", utils.LetterCount(word)))
}

// endRound reveals the word and starts the cooldown. Only Drawing can end a
// round, so a second trigger in the same turn is a no-op.
func (e *Engine) endRound(text string) {
	s := e.state
	p, ok := s.Phase.(Drawing)
	if !ok {
		return
	}
	drawerID := p.DrawerID
	if _, present := s.Roster.Find(drawerID); !present {
		drawerID = ""
	}

	s.Roster.ClearDrawer()
	s.TimeLeft = RoundEndSeconds
	e.setPhase(RoundEnd{DrawerID: drawerID, Word: p.Word})
	e.system(text)
}

func (e *Engine) endGame() {
	s := e.state
	s.Roster.ClearDrawer()
	s.TimeLeft = 0

	winner, ok := e.crownWinner()
	if !ok {
		e.system("Het spel is afgelopen!")
		return
	}
	e.system(fmt.Sprintf("Het spel is afgelopen! %s wint met %d punten.", winner.Name, winner.Score))
	e.log.Info().Str("room", s.RoomCode).Str("winner", winner.ID).Int("score", winner.Score).Msg("game ended")
}

// crownWinner sets GameEnd to the current leader of the roster. A winner who
// leaves afterwards hands the title to the next leader.
func (e *Engine) crownWinner() (roster.Participant, bool) {
	winner, ok := e.state.Roster.Leader()
	e.setPhase(GameEnd{WinnerID: winner.ID})
	return winner, ok
}
