package engine

import "time"

// System entries are attributed to this pseudo participant.
const (
	SystemPlayerID = "system"
	SystemName     = "Systeem"
)

// Audience restricts who gets to read a transcript entry.
type Audience string

const (
	// AudienceAll is visible to everybody.
	AudienceAll Audience = "all"
	// AudienceSolvers is only visible to the drawer and the participants
	// that already guessed the word, until the turn it was written in ends.
	AudienceSolvers Audience = "solvers"
)

// Entry is one line of the room transcript.
type Entry struct {
	ID             string    `json:"id"`
	PlayerID       string    `json:"playerId"`
	PlayerName     string    `json:"playerName"`
	Text           string    `json:"text"`
	IsSystem       bool      `json:"isSystem"`
	IsCorrectGuess bool      `json:"isCorrectGuess"`
	Timestamp      time.Time `json:"timestamp"`
	Audience       Audience  `json:"-"`
	// Turn is the turn counter at the time of writing.
	Turn int `json:"-"`
}

// Transcript is an append-only log of chat, guesses and system notices.
type Transcript struct {
	entries []Entry
}

// Append adds e at the end.
func (t *Transcript) Append(e Entry) {
	if e.Audience == "" {
		e.Audience = AudienceAll
	}
	t.entries = append(t.entries, e)
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Entries returns a copy of every entry, oldest first.
func (t *Transcript) Entries() []Entry {
	return t.Since(0)
}

// Since returns a copy of the entries from position n on.
func (t *Transcript) Since(n int) []Entry {
	if n < 0 {
		n = 0
	}
	if n >= len(t.entries) {
		return []Entry{}
	}
	out := make([]Entry, len(t.entries)-n)
	copy(out, t.entries[n:])
	return out
}

// Last returns the newest entry.
func (t *Transcript) Last() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

func (t *Transcript) clone() *Transcript {
	return &Transcript{entries: t.Entries()}
}
