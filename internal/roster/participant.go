package roster

// Participant is one player in a room.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	IsHost bool   `json:"isHost"`
	IsBot  bool   `json:"isBot"`
	// Score only ever grows.
	Score int `json:"score"`
	// IsDrawing is true for exactly one participant while a word is being
	// chosen or drawn, and for nobody otherwise.
	IsDrawing bool `json:"isDrawing"`
	// HasGuessed is reset at the start of every turn.
	HasGuessed bool `json:"hasGuessed"`
}

// NewParticipant describes a participant about to join.
type NewParticipant struct {
	Name   string
	Avatar string
	IsHost bool
	IsBot  bool
}

// Avatars is the default avatar set. An empty avatar gets the first one.
var Avatars = []string{
	"🐱", "🐶", "🦊", "🐼", "🐸", "🦁", "🐦", "🐲", "🦉", "🐹", "🐯",
}

// BotNames are picked from when a bot joins without a name.
var BotNames = []string{"Klaas", "Sophie", "Daan", "Emma", "Tim"}
