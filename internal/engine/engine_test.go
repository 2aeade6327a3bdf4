package engine

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakimalhazi/Skiblo/internal/roster"
)

// fixedWords always offers the first k words in order and never shuffles.
type fixedWords struct {
	words []string
}

func (f fixedWords) Draw(k int) []string {
	if k > len(f.words) {
		k = len(f.words)
	}
	return append([]string(nil), f.words[:k]...)
}

func (fixedWords) Perm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (fixedWords) Intn(int) int { return 0 }

func newTestEngine(t *testing.T, corpus ...string) *Engine {
	t.Helper()
	if len(corpus) == 0 {
		corpus = []string{"Fiets", "Kaas", "Molen"}
	}
	n := 0
	logger := zerolog.Nop()
	return New(Options{
		Words: fixedWords{words: corpus},
		Now:   func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id%d", n)
		},
		NewRoomCode: func() string { return "ROOM42" },
		Logger:      &logger,
	})
}

func join(t *testing.T, e *Engine, name string, mode JoinMode) roster.Participant {
	t.Helper()
	p, err := e.SubmitJoin(JoinRequest{Name: name, Mode: mode})
	require.NoError(t, err)
	return p
}

// startedGame returns an engine with the named participants in the lobby,
// the first one as host, and the game started.
func startedGame(t *testing.T, names ...string) (*Engine, []roster.Participant) {
	t.Helper()
	e := newTestEngine(t)
	ps := make([]roster.Participant, len(names))
	for i, name := range names {
		mode := JoinJoin
		if i == 0 {
			mode = JoinCreate
		}
		ps[i] = join(t, e, name, mode)
	}
	require.NoError(t, e.StartGame())
	assertValid(t, e)
	return e, ps
}

func tickN(t *testing.T, e *Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		e.Tick()
		assertValid(t, e)
	}
}

func assertValid(t *testing.T, e *Engine) {
	t.Helper()
	require.NoError(t, e.state.validate())
}

func score(t *testing.T, e *Engine, id string) int {
	t.Helper()
	p, ok := e.Participant(id)
	require.True(t, ok)
	return p.Score
}

func lastText(t *testing.T, e *Engine) string {
	t.Helper()
	entry, ok := e.state.Transcript.Last()
	require.True(t, ok)
	return entry.Text
}

func TestSubmitJoin_EmptyNameLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	_, err := e.SubmitJoin(JoinRequest{Name: "   ", Mode: JoinCreate})

	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, PhaseLogin, e.Phase())
	assert.Zero(t, e.state.Roster.Len())
	assert.Zero(t, e.TranscriptLen())
}

func TestSubmitJoin_CreateMakesHost(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	a := join(t, e, "Anna", JoinCreate)
	b := join(t, e, "Bram", JoinJoin)

	assert.Equal(t, PhaseLobby, e.Phase())
	assert.Equal(t, "ROOM42", e.RoomCode())
	assert.True(t, a.IsHost)
	assert.False(t, b.IsHost)
	assert.True(t, e.IsHost(a.ID))
	assert.False(t, e.IsHost(b.ID))
}

func TestSubmitJoin_JoinKeepsRequestedCode(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	p, err := e.SubmitJoin(JoinRequest{Name: "Bram", Mode: JoinJoin, RoomCode: " abc123 "})
	require.NoError(t, err)

	assert.Equal(t, "ABC123", e.RoomCode())
	assert.False(t, p.IsHost)
}

func TestStartGame_NeedsTwoPlayers(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	join(t, e, "Anna", JoinCreate)
	before := e.Snapshot()

	assert.ErrorIs(t, e.StartGame(), ErrNotEnoughPlayers)
	assert.Equal(t, PhaseLobby, e.Phase())
	assert.Equal(t, before.Transcript.Len(), e.TranscriptLen())
}

func TestStartGame_FirstTurnGoesToFirstJoiner(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B")
	s := e.Snapshot()

	assert.Equal(t, PhaseWordSelection, s.PhaseName())
	assert.Equal(t, 1, s.CurrentRound)
	assert.Equal(t, 3, s.TotalRounds)
	assert.Equal(t, ps[0].ID, s.CurrentDrawerID())
	assert.Equal(t, []string{"Fiets", "Kaas", "Molen"}, s.WordOptions())
	assert.Equal(t, WordChoiceSeconds, s.TimeLeft)
	assert.Equal(t, "Ronde 1! A is aan de beurt om te tekenen.", lastText(t, e))
}

func TestStartGame_OutsideLobbyIsNoop(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B")
	require.NoError(t, e.StartGame())
	assert.Equal(t, ps[0].ID, e.Snapshot().CurrentDrawerID())
}

func TestSelectWord(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B")

	assert.False(t, e.SelectWord(ps[1].ID, "Fiets"), "only the drawer chooses")
	assert.False(t, e.SelectWord(ps[0].ID, "Tulpen"), "must be one of the options")
	require.True(t, e.SelectWord(ps[0].ID, " kaas "))
	assertValid(t, e)

	s := e.Snapshot()
	assert.Equal(t, PhaseDrawing, s.PhaseName())
	assert.Equal(t, "Kaas", s.WordToGuess())
	assert.Equal(t, 4, s.WordLength())
	assert.Equal(t, 60, s.TimeLeft)
	assert.Nil(t, s.WordOptions())
	assert.Equal(t, "Het woord is gekozen! Het heeft 4 letters.", lastText(t, e))

	assert.False(t, e.SelectWord(ps[0].ID, "Fiets"), "word is already fixed")
}

func TestTick_WordChoiceTimeoutPicksFirstOption(t *testing.T) {
	t.Parallel()

	e, _ := startedGame(t, "A", "B")
	tickN(t, e, WordChoiceSeconds-1)
	assert.Equal(t, PhaseWordSelection, e.Phase())
	assert.Equal(t, 1, e.Snapshot().TimeLeft)

	tickN(t, e, 1)
	s := e.Snapshot()
	assert.Equal(t, PhaseDrawing, s.PhaseName())
	assert.Equal(t, "Fiets", s.WordToGuess())
}

func TestTick_NoopOutsideActivePhases(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	assert.False(t, e.Tick())
	join(t, e, "A", JoinCreate)
	assert.False(t, e.Tick())
	assert.Equal(t, PhaseLobby, e.Phase())
	assert.Zero(t, e.Snapshot().TimeLeft)
}

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B", "C")
	a, b, c := ps[0], ps[1], ps[2]
	require.True(t, a.IsHost)
	require.Equal(t, a.ID, e.Snapshot().CurrentDrawerID())

	require.True(t, e.SelectWord(a.ID, "Fiets"))
	tickN(t, e, 20)
	require.Equal(t, 40, e.Snapshot().TimeLeft)

	res := e.SubmitGuess(b.ID, "  fiets ")
	assert.True(t, res.Correct)
	assert.False(t, res.RoundEnded)
	assert.Equal(t, 117, score(t, e, b.ID))
	assert.Equal(t, 20, score(t, e, a.ID))
	assert.Zero(t, score(t, e, c.ID))
	assert.Equal(t, "B heeft het woord geraden!", lastText(t, e))
	for _, entry := range e.state.Transcript.Entries() {
		assert.NotContains(t, strings.ToLower(entry.Text), "fiets", "the answer leaked")
	}

	tickN(t, e, 40)
	s := e.Snapshot()
	require.Equal(t, PhaseRoundEnd, s.PhaseName())
	assert.Equal(t, "Fiets", s.WordToGuess())
	assert.Equal(t, RoundEndSeconds, s.TimeLeft)
	assert.Equal(t, "Tijd is om! Het woord was: Fiets", lastText(t, e))

	tickN(t, e, RoundEndSeconds)
	s = e.Snapshot()
	assert.Equal(t, PhaseWordSelection, s.PhaseName())
	assert.Equal(t, b.ID, s.CurrentDrawerID())
	assert.Equal(t, 1, s.CurrentRound)
	for _, p := range s.Roster.Participants() {
		assert.False(t, p.HasGuessed)
	}
}

func TestSubmitGuess_AllGuessedEndsRoundOnce(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B", "C")
	require.True(t, e.SelectWord(ps[0].ID, "Kaas"))

	first := e.SubmitGuess(ps[1].ID, "kaas")
	require.True(t, first.Correct)
	assert.Equal(t, PhaseDrawing, e.Phase())

	second := e.SubmitGuess(ps[2].ID, "KAAS")
	require.True(t, second.Correct)
	assert.True(t, second.RoundEnded)
	assert.Equal(t, PhaseRoundEnd, e.Phase())
	assert.Equal(t, 40, score(t, e, ps[0].ID))
	entries := e.TranscriptLen()

	// The timer path reaching zero afterwards must not end the round again.
	tickN(t, e, RoundEndSeconds-1)
	assert.Equal(t, PhaseRoundEnd, e.Phase())
	assert.Equal(t, entries, e.TranscriptLen())
	assert.Equal(t, 40, score(t, e, ps[0].ID))
}

func TestSubmitGuess_RepeatGuessIsChat(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B", "C")
	require.True(t, e.SelectWord(ps[0].ID, "Kaas"))
	require.True(t, e.SubmitGuess(ps[1].ID, "kaas").Correct)

	res := e.SubmitGuess(ps[1].ID, "kaas")
	assert.False(t, res.Correct)
	assert.Equal(t, 150, score(t, e, ps[1].ID))

	entry, _ := e.state.Transcript.Last()
	assert.Equal(t, "kaas", entry.Text)
	assert.Equal(t, AudienceSolvers, entry.Audience)

	// The drawer cannot score on their own word either.
	res = e.SubmitGuess(ps[0].ID, "Kaas")
	assert.False(t, res.Correct)
	assert.Equal(t, 20, score(t, e, ps[0].ID))
}

func TestSubmitGuess_WrongAndOutOfPhaseTextIsChat(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B")
	res := e.SubmitGuess(ps[1].ID, "hallo")
	assert.True(t, res.Accepted)
	assert.False(t, res.Correct)
	assert.Equal(t, "hallo", lastText(t, e))

	require.True(t, e.SelectWord(ps[0].ID, "Kaas"))
	res = e.SubmitGuess(ps[1].ID, "molen")
	assert.False(t, res.Correct)
	assert.Equal(t, "molen", lastText(t, e))

	before := e.TranscriptLen()
	assert.False(t, e.SubmitGuess(ps[1].ID, "   ").Accepted)
	assert.False(t, e.SubmitGuess("ghost", "kaas").Accepted)
	assert.Equal(t, before, e.TranscriptLen())
}

func TestSubmitGuess_ZeroTimeLeftStillScoresBase(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B", "C")
	require.True(t, e.SelectWord(ps[0].ID, "Kaas"))
	e.state.TimeLeft = 0

	res := e.SubmitGuess(ps[1].ID, "kaas")
	require.True(t, res.Correct)
	assert.Equal(t, 50, res.Award.Guesser)
	assert.Equal(t, 20, res.Award.Drawer)
}

func TestLastTurnOfLastRoundEndsGame(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	a := join(t, e, "A", JoinCreate)
	b := join(t, e, "B", JoinJoin)
	settings := e.Settings()
	settings.Rounds = 1
	require.True(t, e.UpdateSettings(settings))
	require.NoError(t, e.StartGame())

	// A draws, B guesses.
	require.True(t, e.SelectWord(a.ID, "Kaas"))
	require.True(t, e.SubmitGuess(b.ID, "kaas").RoundEnded)
	tickN(t, e, RoundEndSeconds)
	require.Equal(t, b.ID, e.Snapshot().CurrentDrawerID())

	// B draws, A guesses at the last second.
	require.True(t, e.SelectWord(b.ID, "Molen"))
	tickN(t, e, 59)
	require.True(t, e.SubmitGuess(a.ID, "molen").RoundEnded)
	tickN(t, e, RoundEndSeconds)

	s := e.Snapshot()
	assert.Equal(t, PhaseGameEnd, s.PhaseName())
	assert.Equal(t, b.ID, s.WinnerID())
	assert.Equal(t, 1, s.CurrentRound)
	assert.Zero(t, s.TimeLeft)
	assert.False(t, e.Tick())
}

func TestGameEnd_TieGoesToEarliest(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B")
	e.state.Roster.AddScore(ps[0].ID, 70)
	e.state.Roster.AddScore(ps[1].ID, 70)
	e.endGame()

	assert.Equal(t, ps[0].ID, e.Snapshot().WinnerID())
}

func TestRoundWrapIncrementsRound(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B")
	// Let both turns time out completely.
	for i := 0; i < 2; i++ {
		tickN(t, e, WordChoiceSeconds+60+RoundEndSeconds)
	}

	s := e.Snapshot()
	assert.Equal(t, PhaseWordSelection, s.PhaseName())
	assert.Equal(t, 2, s.CurrentRound)
	assert.Equal(t, ps[0].ID, s.CurrentDrawerID())
	assert.Equal(t, 3, s.Turn)
}

func TestUpdateSettings(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	join(t, e, "A", JoinCreate)
	join(t, e, "B", JoinJoin)

	require.True(t, e.UpdateSettings(Settings{Rounds: 99, TimePerRound: 5, WordCount: 0, GameMode: "Bogus"}))
	s := e.Settings()
	assert.Equal(t, MaxRounds, s.Rounds)
	assert.Equal(t, MinTimePerRound, s.TimePerRound)
	assert.Equal(t, MinWordCount, s.WordCount)
	assert.Equal(t, ModeClassic, s.GameMode)
	assert.Equal(t, DifficultyMedium, s.Difficulty)
	assert.Equal(t, MaxRounds, e.Snapshot().TotalRounds)

	require.NoError(t, e.StartGame())
	assert.False(t, e.UpdateSettings(DefaultSettings()), "settings are frozen once started")
	assert.Equal(t, MaxRounds, e.Settings().Rounds)
}

func TestAddBot_OnlyInLobby(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	_, ok := e.AddBot()
	assert.False(t, ok)

	join(t, e, "A", JoinCreate)
	bot, ok := e.AddBot()
	require.True(t, ok)
	assert.True(t, bot.IsBot)
	assert.Equal(t, "Klaas (Bot)", bot.Name)
	require.NoError(t, e.StartGame())

	_, ok = e.AddBot()
	assert.False(t, ok)
}

func TestLateJoinerGuesses(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B")
	require.True(t, e.SelectWord(ps[0].ID, "Kaas"))
	c := join(t, e, "C", JoinJoin)
	assertValid(t, e)

	assert.False(t, c.IsHost)
	assert.False(t, e.SubmitGuess(ps[1].ID, "kaas").RoundEnded, "C still has to guess")
	assert.True(t, e.SubmitGuess(c.ID, "kaas").RoundEnded)
}

func TestRemoveParticipant(t *testing.T) {
	t.Parallel()

	t.Run("unknown id is a no-op", func(t *testing.T) {
		e, _ := startedGame(t, "A", "B")
		before := e.TranscriptLen()
		assert.False(t, e.RemoveParticipant("ghost"))
		assert.Equal(t, before, e.TranscriptLen())
	})

	t.Run("host leaving hands over", func(t *testing.T) {
		e := newTestEngine(t)
		a := join(t, e, "A", JoinCreate)
		b := join(t, e, "B", JoinJoin)
		require.True(t, e.RemoveParticipant(a.ID))
		assert.True(t, e.IsHost(b.ID))
		assert.Equal(t, PhaseLobby, e.Phase())
	})

	t.Run("drawer leaving while drawing ends the round", func(t *testing.T) {
		e, ps := startedGame(t, "A", "B", "C")
		require.True(t, e.SelectWord(ps[0].ID, "Kaas"))
		require.True(t, e.RemoveParticipant(ps[0].ID))
		assertValid(t, e)

		s := e.Snapshot()
		assert.Equal(t, PhaseRoundEnd, s.PhaseName())
		assert.Equal(t, "Kaas", s.WordToGuess())
		assert.Empty(t, s.CurrentDrawerID())

		tickN(t, e, RoundEndSeconds)
		s = e.Snapshot()
		assert.Equal(t, ps[1].ID, s.CurrentDrawerID(), "B moved into the empty seat")
		assert.Equal(t, 1, s.CurrentRound)
	})

	t.Run("drawer leaving while choosing skips to next", func(t *testing.T) {
		e, ps := startedGame(t, "A", "B", "C")
		tickN(t, e, WordChoiceSeconds+60+RoundEndSeconds)
		require.Equal(t, ps[1].ID, e.Snapshot().CurrentDrawerID())

		require.True(t, e.RemoveParticipant(ps[1].ID))
		assertValid(t, e)
		s := e.Snapshot()
		assert.Equal(t, PhaseWordSelection, s.PhaseName())
		assert.Equal(t, ps[2].ID, s.CurrentDrawerID())
		assert.Equal(t, 1, s.CurrentRound)
	})

	t.Run("last guesser leaving ends the round", func(t *testing.T) {
		e, ps := startedGame(t, "A", "B", "C")
		require.True(t, e.SelectWord(ps[0].ID, "Kaas"))
		require.True(t, e.SubmitGuess(ps[1].ID, "kaas").Correct)
		require.True(t, e.RemoveParticipant(ps[2].ID))
		assert.Equal(t, PhaseRoundEnd, e.Phase())
	})

	t.Run("earlier participant leaving keeps rotation", func(t *testing.T) {
		e, ps := startedGame(t, "A", "B", "C")
		tickN(t, e, WordChoiceSeconds+60+RoundEndSeconds)
		require.Equal(t, ps[1].ID, e.Snapshot().CurrentDrawerID())

		require.True(t, e.RemoveParticipant(ps[0].ID))
		tickN(t, e, WordChoiceSeconds+60+RoundEndSeconds)
		assert.Equal(t, ps[2].ID, e.Snapshot().CurrentDrawerID())
	})

	t.Run("too few players ends the game", func(t *testing.T) {
		e, ps := startedGame(t, "A", "B")
		require.True(t, e.SelectWord(ps[0].ID, "Kaas"))
		require.True(t, e.SubmitGuess(ps[1].ID, "kaas").RoundEnded)
		require.True(t, e.RemoveParticipant(ps[0].ID))
		assertValid(t, e)

		s := e.Snapshot()
		assert.Equal(t, PhaseGameEnd, s.PhaseName())
		assert.Equal(t, ps[1].ID, s.WinnerID())
	})

	t.Run("winner leaving after the game passes the win on", func(t *testing.T) {
		e, ps := startedGame(t, "A", "B", "C")
		e.state.Roster.AddScore(ps[1].ID, 90)
		e.state.Roster.AddScore(ps[2].ID, 40)
		e.endGame()
		require.Equal(t, ps[1].ID, e.Snapshot().WinnerID())

		require.True(t, e.RemoveParticipant(ps[1].ID))
		assertValid(t, e)
		assert.Equal(t, ps[2].ID, e.Snapshot().WinnerID())
		assert.Equal(t, ps[2].ID, e.View(ps[0].ID).WinnerID)

		require.True(t, e.RemoveParticipant(ps[0].ID))
		require.True(t, e.RemoveParticipant(ps[2].ID))
		assert.Empty(t, e.Snapshot().WinnerID())
		assert.Equal(t, PhaseGameEnd, e.Phase())
	})
}

func TestView_HidesWordFromGuessers(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B", "C")
	drawer, guesser := ps[0].ID, ps[1].ID

	assert.Equal(t, []string{"Fiets", "Kaas", "Molen"}, e.View(drawer).WordOptions)
	assert.Empty(t, e.View(guesser).WordOptions)

	require.True(t, e.SelectWord(drawer, "Kaas"))
	assert.Equal(t, "Kaas", e.View(drawer).WordToGuess)
	gv := e.View(guesser)
	assert.Empty(t, gv.WordToGuess)
	assert.Equal(t, 4, gv.WordLength)
	assert.Equal(t, "____", gv.Hint)
	assert.Empty(t, e.View("").WordToGuess)

	require.True(t, e.SubmitGuess(guesser, "kaas").Correct)
	assert.Empty(t, e.View(guesser).WordToGuess, "solvers still only get the hint")

	require.True(t, e.SubmitGuess(ps[2].ID, "kaas").RoundEnded)
	assert.Equal(t, "Kaas", e.View(ps[2].ID).WordToGuess)
}

func TestView_SolverChatIsHiddenUntilRoundEnds(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B", "C")
	require.True(t, e.SelectWord(ps[0].ID, "Kaas"))
	require.True(t, e.SubmitGuess(ps[1].ID, "kaas").Correct)
	e.SubmitGuess(ps[1].ID, "kaasje toch")
	e.SubmitGuess(ps[1].ID, "Kaas")
	e.SubmitGuess(ps[0].ID, "het is kaas, geel")
	e.SubmitGuess(ps[2].ID, "molen?")

	contains := func(v View, text string) bool {
		for _, m := range v.Messages {
			if m.Text == text {
				return true
			}
		}
		return false
	}

	assert.True(t, contains(e.View(ps[1].ID), "Kaas"))
	assert.True(t, contains(e.View(ps[0].ID), "Kaas"))
	assert.True(t, contains(e.View(ps[1].ID), "het is kaas, geel"))
	assert.True(t, contains(e.View(ps[0].ID), "kaasje toch"))

	guesser := e.View(ps[2].ID)
	assert.False(t, contains(guesser, "Kaas"))
	assert.False(t, contains(guesser, "kaasje toch"), "any solver chat is hidden while drawing")
	assert.False(t, contains(guesser, "het is kaas, geel"), "drawer chat is hidden while drawing")
	assert.True(t, contains(guesser, "molen?"))
	assert.True(t, contains(e.View(ps[1].ID), "molen?"), "guesser chat reaches everybody")

	tickN(t, e, 60)
	require.Equal(t, PhaseRoundEnd, e.Phase())
	guesser = e.View(ps[2].ID)
	assert.True(t, contains(guesser, "Kaas"))
	assert.True(t, contains(guesser, "het is kaas, geel"))
}

func TestView_PlayersSortedByScore(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B")
	require.True(t, e.SelectWord(ps[0].ID, "Kaas"))
	require.True(t, e.SubmitGuess(ps[1].ID, "kaas").Correct)

	v := e.View(ps[0].ID)
	require.Len(t, v.Players, 2)
	assert.Equal(t, ps[1].ID, v.Players[0].ID)
	// Rotation order is untouched.
	assert.Equal(t, ps[0].ID, e.Participants()[0].ID)
}

func TestHint_RevealsOverTime(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B")
	settings := e.state.Settings
	settings.HintRevealTime = 10
	e.state.Settings = settings
	require.True(t, e.SelectWord(ps[0].ID, "Molen"))

	assert.Equal(t, "_____", e.Snapshot().Hint())
	tickN(t, e, 10)
	assert.Equal(t, "M____", e.Snapshot().Hint())
	tickN(t, e, 10)
	assert.Equal(t, "Mo___", e.Snapshot().Hint())
	tickN(t, e, 30)
	assert.Equal(t, "Mo___", e.Snapshot().Hint(), "never more than half the letters")
}

func TestSnapshot_IsIndependent(t *testing.T) {
	t.Parallel()

	e, ps := startedGame(t, "A", "B")
	snap := e.Snapshot()
	require.True(t, e.SelectWord(ps[0].ID, "Kaas"))
	e.SubmitGuess(ps[1].ID, "kaas")

	assert.Equal(t, PhaseWordSelection, snap.PhaseName())
	p, _ := snap.Roster.Find(ps[1].ID)
	assert.Zero(t, p.Score)
	assert.Less(t, snap.Transcript.Len(), e.TranscriptLen())
}

func TestNewRoomCode(t *testing.T) {
	t.Parallel()

	code := NewRoomCode()
	assert.Len(t, code, 6)
	assert.Equal(t, strings.ToUpper(code), code)
}
