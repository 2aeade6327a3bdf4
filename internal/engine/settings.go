package engine

// GameMode is a label chosen in the lobby. The engine plays every mode the
// same way.
type GameMode string

const (
	ModeClassic GameMode = "Classic Mode"
	ModeSpeed   GameMode = "Speed Mode"
	ModeChaos   GameMode = "Chaos Mode"
	ModeTeam    GameMode = "Team Mode"
	ModeZen     GameMode = "Zen Mode"
)

// GameModes lists every known mode in display order.
var GameModes = []GameMode{ModeClassic, ModeSpeed, ModeChaos, ModeTeam, ModeZen}

// Difficulty is a label chosen in the lobby.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	MinRounds       = 1
	MaxRounds       = 10
	MinTimePerRound = 10
	MaxTimePerRound = 300
	MinWordCount    = 1
	MaxWordCount    = 10
)

// Settings are chosen by the host in the lobby and frozen once the game
// starts.
type Settings struct {
	// TimePerRound is the drawing time budget in seconds.
	TimePerRound int `json:"timePerRound"`
	// Rounds is how many times the drawer rotation goes around the roster.
	Rounds int `json:"rounds"`
	// WordCount is how many word options the drawer gets to choose from.
	WordCount         int        `json:"wordCount"`
	Difficulty        Difficulty `json:"difficulty"`
	GameMode          GameMode   `json:"gameMode"`
	AnimationsEnabled bool       `json:"animationsEnabled"`
	CustomWords       bool       `json:"customWords"`
	// HintRevealTime is the number of seconds between letter reveals while
	// drawing. Zero turns hints off.
	HintRevealTime   int  `json:"hintRevealTime"`
	IsPublic         bool `json:"isPublic"`
	AllowJoinViaLink bool `json:"allowJoinViaLink"`
}

// DefaultSettings returns the settings a new room starts with.
func DefaultSettings() Settings {
	return Settings{
		TimePerRound:      60,
		Rounds:            3,
		WordCount:         3,
		Difficulty:        DifficultyMedium,
		GameMode:          ModeClassic,
		AnimationsEnabled: true,
		CustomWords:       false,
		HintRevealTime:    30,
		IsPublic:          false,
		AllowJoinViaLink:  true,
	}
}

// Sanitize clamps every numeric setting into its allowed range and replaces
// unknown labels with defaults.
func (s Settings) Sanitize() Settings {
	s.Rounds = clamp(s.Rounds, MinRounds, MaxRounds)
	s.TimePerRound = clamp(s.TimePerRound, MinTimePerRound, MaxTimePerRound)
	s.WordCount = clamp(s.WordCount, MinWordCount, MaxWordCount)
	s.HintRevealTime = clamp(s.HintRevealTime, 0, s.TimePerRound)

	switch s.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		s.Difficulty = DifficultyMedium
	}

	known := false
	for _, m := range GameModes {
		if s.GameMode == m {
			known = true
			break
		}
	}
	if !known {
		s.GameMode = ModeClassic
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
